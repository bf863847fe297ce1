package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("secret-token", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("")
	require.EqualError(t, err, "Notion API token is required")
}

func TestDoRequestHeaders(t *testing.T) {
	var gotAuth, gotVersion, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"results": [], "has_more": false}`))
	})

	_, err := c.ListPages(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "2022-06-28", gotVersion)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDoRequestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Could not find page"}`))
	})

	_, err := c.GetPage(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error 404")
	assert.Contains(t, err.Error(), "Could not find page")
}

func TestSearchPagesMapsResults(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"results": [
				{
					"object": "page",
					"id": "p-1",
					"url": "https://notion.so/p-1",
					"created_time": "2024-01-01T00:00:00.000Z",
					"last_edited_time": "2024-01-02T00:00:00.000Z",
					"properties": {
						"Name": {"type": "title", "title": [{"plain_text": "Roadmap"}]}
					},
					"parent": {"type": "database_id", "database_id": "db-1"}
				}
			],
			"has_more": true,
			"next_cursor": "cur-1"
		}`))
	})

	list, err := c.SearchPages(context.Background(), "roadmap", 25)
	require.NoError(t, err)

	assert.Equal(t, "roadmap", gotBody["query"])
	assert.Equal(t, float64(25), gotBody["page_size"])
	filter := gotBody["filter"].(map[string]any)
	assert.Equal(t, "page", filter["value"])

	require.Len(t, list.Pages, 1)
	assert.Equal(t, "p-1", list.Pages[0].ID)
	assert.Equal(t, "Roadmap", list.Pages[0].Title)
	assert.Equal(t, "db-1", list.Pages[0].Parent.DatabaseID)
	assert.True(t, list.HasMore)
	assert.Equal(t, "cur-1", list.NextCursor)
}

func TestSearchPagesByTitleFiltersClientSide(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [
				{"id": "p-1", "properties": {"Name": {"type": "title", "title": [{"plain_text": "Meeting Notes"}]}}, "parent": {"type": "workspace"}},
				{"id": "p-2", "properties": {"Name": {"type": "title", "title": [{"plain_text": "Budget"}]}}, "parent": {"type": "workspace"}},
				{"id": "p-3", "properties": {"Name": {"type": "title", "title": [{"plain_text": "Notes Archive"}]}}, "parent": {"type": "workspace"}}
			],
			"has_more": false
		}`))
	})

	pages, err := c.SearchPagesByTitle(context.Background(), "notes", 10)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "p-1", pages[0].ID)
	assert.Equal(t, "p-3", pages[1].ID)
}

func TestCreateComment(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/comments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"id": "c-1",
			"discussion_id": "d-1",
			"created_time": "2024-01-01T00:00:00.000Z",
			"last_edited_time": "2024-01-01T00:00:00.000Z",
			"rich_text": [{"plain_text": "hi"}],
			"parent": {}
		}`))
	})

	comment, err := c.CreateComment(context.Background(), "p-1", "hi", "")
	require.NoError(t, err)

	parent := gotBody["parent"].(map[string]any)
	assert.Equal(t, "p-1", parent["page_id"])
	assert.Equal(t, "c-1", comment.ID)
	assert.Equal(t, "d-1", comment.DiscussionID)
	assert.Equal(t, "hi", comment.Content)
}

func TestCreateCommentReply(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id": "c-2", "discussion_id": "d-1", "rich_text": [], "parent": {}}`))
	})

	_, err := c.CreateComment(context.Background(), "p-1", "reply", "d-1")
	require.NoError(t, err)
	assert.Equal(t, "d-1", gotBody["discussion_id"])
	assert.Nil(t, gotBody["parent"])
}

func TestListBlockChildrenPaginates(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("start_cursor") == "" {
			w.Write([]byte(`{"results": [{"id": "b-1"}], "has_more": true, "next_cursor": "cur-2"}`))
			return
		}
		require.Equal(t, "cur-2", r.URL.Query().Get("start_cursor"))
		w.Write([]byte(`{"results": [{"id": "b-2"}], "has_more": false}`))
	})

	blocks, err := c.ListBlockChildren(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "b-1", blocks[0]["id"])
	assert.Equal(t, "b-2", blocks[1]["id"])
}

func TestArchivePage(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id": "p-1", "properties": {}, "parent": {"type": "workspace"}}`))
	})

	page, err := c.ArchivePage(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, true, gotBody["archived"])
	assert.Equal(t, "p-1", page.ID)
}
