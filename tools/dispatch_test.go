package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemprompt-io/systemprompt-mcp-notion/notion"
	"github.com/systemprompt-io/systemprompt-mcp-notion/prompts"
	"github.com/systemprompt-io/systemprompt-mcp-notion/sampling"
)

// fakeNotion records calls and returns canned data.
type fakeNotion struct {
	calls []string
	err   error

	blocks []map[string]any
}

func (f *fakeNotion) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeNotion) page(id string) *notion.Page {
	return &notion.Page{ID: id, Title: "Page " + id, Parent: notion.Parent{Type: "workspace", Workspace: true}}
}

func (f *fakeNotion) ListPages(ctx context.Context, maxResults int) (*notion.PageList, error) {
	f.record("ListPages")
	return &notion.PageList{Pages: []notion.Page{*f.page("p-1")}}, f.err
}

func (f *fakeNotion) SearchPages(ctx context.Context, query string, maxResults int) (*notion.PageList, error) {
	f.record("SearchPages")
	return &notion.PageList{Pages: []notion.Page{*f.page("p-1")}}, f.err
}

func (f *fakeNotion) SearchPagesByTitle(ctx context.Context, title string, maxResults int) ([]notion.Page, error) {
	f.record("SearchPagesByTitle")
	return []notion.Page{*f.page("p-1")}, f.err
}

func (f *fakeNotion) GetPage(ctx context.Context, pageID string) (*notion.Page, error) {
	f.record("GetPage")
	if f.err != nil {
		return nil, f.err
	}
	return f.page(pageID), nil
}

func (f *fakeNotion) CreatePage(ctx context.Context, params notion.CreatePageParams) (*notion.Page, error) {
	f.record("CreatePage")
	if f.err != nil {
		return nil, f.err
	}
	return f.page("created"), nil
}

func (f *fakeNotion) UpdatePage(ctx context.Context, params notion.UpdatePageParams) (*notion.Page, error) {
	f.record("UpdatePage")
	if f.err != nil {
		return nil, f.err
	}
	return f.page(params.PageID), nil
}

func (f *fakeNotion) ArchivePage(ctx context.Context, pageID string) (*notion.Page, error) {
	f.record("ArchivePage")
	if f.err != nil {
		return nil, f.err
	}
	return f.page(pageID), nil
}

func (f *fakeNotion) GetPageProperty(ctx context.Context, pageID, propertyID string) (map[string]any, error) {
	f.record("GetPageProperty")
	return map[string]any{"type": "title"}, f.err
}

func (f *fakeNotion) SearchDatabases(ctx context.Context, maxResults int) ([]notion.Database, error) {
	f.record("SearchDatabases")
	return []notion.Database{{ID: "db-1", Title: "Tasks"}}, f.err
}

func (f *fakeNotion) QueryDatabase(ctx context.Context, databaseID string, maxResults int) ([]notion.Page, error) {
	f.record("QueryDatabase")
	return []notion.Page{*f.page("p-1")}, f.err
}

func (f *fakeNotion) CreateComment(ctx context.Context, pageID, content, discussionID string) (*notion.Comment, error) {
	f.record("CreateComment")
	if f.err != nil {
		return nil, f.err
	}
	return &notion.Comment{ID: "c-1", DiscussionID: "d-1", Content: content}, nil
}

func (f *fakeNotion) ListComments(ctx context.Context, pageID string) ([]notion.Comment, error) {
	f.record("ListComments")
	return []notion.Comment{{ID: "c-1", Content: "hi"}}, f.err
}

func (f *fakeNotion) ListBlockChildren(ctx context.Context, blockID string) ([]map[string]any, error) {
	f.record("ListBlockChildren")
	if f.blocks != nil {
		return f.blocks, f.err
	}
	return []map[string]any{{"id": "b-1", "type": "paragraph"}}, f.err
}

// fakeSampler captures the request and returns a canned completion.
type fakeSampler struct {
	got    *sampling.Request
	result *mcp.CreateMessageResult
	err    error
}

func (s *fakeSampler) CreateMessage(ctx context.Context, req *sampling.Request) (*mcp.CreateMessageResult, error) {
	s.got = req
	return s.result, s.err
}

func textCompletion(text string) *mcp.CreateMessageResult {
	return &mcp.CreateMessageResult{
		SamplingMessage: mcp.SamplingMessage{
			Role:    mcp.RoleAssistant,
			Content: mcp.NewTextContent(text),
		},
		Model:      "test-model",
		StopReason: "endTurn",
	}
}

func newTestDispatcher(api *fakeNotion, sampler *fakeSampler) *Dispatcher {
	return NewDispatcher(api, sampler, prompts.NewStore(), nil)
}

// findResource extracts the embedded resource from a tool result.
func findResource(t *testing.T, result *mcp.CallToolResult) mcp.TextResourceContents {
	t.Helper()
	for _, content := range result.Content {
		if embedded, ok := content.(mcp.EmbeddedResource); ok {
			contents, ok := embedded.Resource.(mcp.TextResourceContents)
			require.True(t, ok)
			return contents
		}
	}
	t.Fatal("no embedded resource in result")
	return mcp.TextResourceContents{}
}

func TestDispatchUnknownTool(t *testing.T) {
	api := &fakeNotion{}
	d := newTestDispatcher(api, &fakeSampler{})

	_, err := d.Dispatch(context.Background(), "bogus_tool", map[string]any{})
	require.EqualError(t, err, "Tool call failed: Unknown tool: bogus_tool")
	assert.Empty(t, api.calls, "unknown tool must not reach the Notion client")
}

func TestDispatchValidatesBeforeHandler(t *testing.T) {
	api := &fakeNotion{}
	d := newTestDispatcher(api, &fakeSampler{})

	_, err := d.Dispatch(context.Background(), GetPage, map[string]any{})
	require.EqualError(t, err, "Tool call failed: Missing required argument: pageId")
	assert.Empty(t, api.calls, "invalid arguments must not reach the Notion client")
}

func TestDispatchWrapsErrorsOnce(t *testing.T) {
	api := &fakeNotion{err: errors.New("API error 500: boom")}
	d := newTestDispatcher(api, &fakeSampler{})

	_, err := d.Dispatch(context.Background(), GetPage, map[string]any{"pageId": "p-1"})
	require.EqualError(t, err, "Tool call failed: API error 500: boom")

	api.err = errors.New("Tool call failed: already tagged")
	_, err = d.Dispatch(context.Background(), GetPage, map[string]any{"pageId": "p-1"})
	require.EqualError(t, err, "Tool call failed: already tagged")
}

func TestDispatchGetPage(t *testing.T) {
	api := &fakeNotion{}
	d := newTestDispatcher(api, &fakeSampler{})

	result, err := d.Dispatch(context.Background(), GetPage, map[string]any{"pageId": "p-9"})
	require.NoError(t, err)

	contents := findResource(t, result)
	assert.Equal(t, "notion://pages/p-9", contents.URI)
	assert.Equal(t, "application/json", contents.MIMEType)

	var page notion.Page
	require.NoError(t, json.Unmarshal([]byte(contents.Text), &page))
	assert.Equal(t, "p-9", page.ID)
}

func TestDispatchListPages(t *testing.T) {
	api := &fakeNotion{}
	d := newTestDispatcher(api, &fakeSampler{})

	result, err := d.Dispatch(context.Background(), ListPages, nil)
	require.NoError(t, err)

	contents := findResource(t, result)
	assert.Equal(t, "notion://pages", contents.URI)
	assert.Equal(t, []string{"ListPages"}, api.calls)
}

func TestDispatchCreateComment(t *testing.T) {
	api := &fakeNotion{}
	d := newTestDispatcher(api, &fakeSampler{})

	result, err := d.Dispatch(context.Background(), CreateComment, map[string]any{
		"pageId":  "p-1",
		"content": "Nice work",
	})
	require.NoError(t, err)

	contents := findResource(t, result)
	assert.Equal(t, "notion://comments/c-1", contents.URI)

	var comment notion.Comment
	require.NoError(t, json.Unmarshal([]byte(contents.Text), &comment))
	assert.Equal(t, "c-1", comment.ID)
	assert.Equal(t, "d-1", comment.DiscussionID)
	assert.Equal(t, "Nice work", comment.Content)
}

func TestDispatchCreatePageValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{
			name: "parent without ids",
			args: map[string]any{
				"parent":     map[string]any{"type": "database_id"},
				"properties": map[string]any{},
			},
			wantErr: "Tool call failed: Parent must have either database_id or page_id",
		},
		{
			name: "database parent without title",
			args: map[string]any{
				"parent":     map[string]any{"database_id": "db-1"},
				"properties": map[string]any{"Status": map[string]any{}},
			},
			wantErr: "Tool call failed: When creating a page in a database, properties must include a title field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeNotion{}
			d := newTestDispatcher(api, &fakeSampler{})
			_, err := d.Dispatch(context.Background(), CreatePage, tt.args)
			require.EqualError(t, err, tt.wantErr)
			assert.Empty(t, api.calls)
		})
	}
}

func TestDispatchCreatePage(t *testing.T) {
	api := &fakeNotion{}
	d := newTestDispatcher(api, &fakeSampler{})

	result, err := d.Dispatch(context.Background(), CreatePage, map[string]any{
		"parent": map[string]any{"database_id": "db-1"},
		"properties": map[string]any{
			"title": map[string]any{
				"title": []any{map[string]any{"text": map[string]any{"content": "New"}}},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CreatePage"}, api.calls)

	contents := findResource(t, result)
	assert.Equal(t, "notion://pages/created", contents.URI)
}

func TestDispatchCreatePageComplex(t *testing.T) {
	api := &fakeNotion{}
	sampler := &fakeSampler{result: textCompletion(`{"status": "created"}`)}
	d := newTestDispatcher(api, sampler)

	result, err := d.Dispatch(context.Background(), CreatePageComplex, map[string]any{
		"databaseId":       "db-1",
		"userInstructions": "Write a weekly plan",
	})
	require.NoError(t, err)

	require.NotNil(t, sampler.got)
	assert.Equal(t, prompts.CreatePageCallback, sampler.got.Callback)
	assert.Equal(t, 100000, sampler.got.Params.MaxTokens)
	require.NotNil(t, sampler.got.Params.Temperature)
	assert.Equal(t, 0.7, *sampler.got.Params.Temperature)

	require.Len(t, sampler.got.Params.Messages, 2)
	userText, _ := sampler.got.Params.Messages[1].Content["text"].(string)
	assert.Contains(t, userText, "<databaseId>db-1</databaseId>")
	assert.Contains(t, userText, "Write a weekly plan")
	assert.NotContains(t, userText, "{{")

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"status": "created"}`, text.Text)
}

func TestDispatchUpdatePageComplexInjectsSnapshot(t *testing.T) {
	api := &fakeNotion{blocks: []map[string]any{{"id": "b-7", "type": "heading_1"}}}
	sampler := &fakeSampler{result: textCompletion(`{"ok": true}`)}
	d := newTestDispatcher(api, sampler)

	_, err := d.Dispatch(context.Background(), UpdatePageComplex, map[string]any{
		"pageId":           "p-1",
		"userInstructions": "Tighten the intro",
	})
	require.NoError(t, err)

	assert.Contains(t, api.calls, "ListBlockChildren")
	require.NotNil(t, sampler.got)
	assert.Equal(t, prompts.EditPageCallback, sampler.got.Callback)

	userText, _ := sampler.got.Params.Messages[1].Content["text"].(string)
	assert.Contains(t, userText, "b-7", "current page snapshot must be injected")
	assert.Contains(t, userText, "<pageId>p-1</pageId>")
}

func TestDispatchComplexSamplerFailure(t *testing.T) {
	api := &fakeNotion{}
	sampler := &fakeSampler{err: errors.New("Sampling request failed: no client")}
	d := newTestDispatcher(api, sampler)

	_, err := d.Dispatch(context.Background(), CreatePageComplex, map[string]any{
		"databaseId":       "db-1",
		"userInstructions": "x",
	})
	require.EqualError(t, err, "Tool call failed: Sampling request failed: no client")
}

func TestCatalogIsClosedAndRoutable(t *testing.T) {
	d := newTestDispatcher(&fakeNotion{}, &fakeSampler{})
	for _, desc := range Catalog() {
		assert.True(t, strings.HasPrefix(desc.Name, "systemprompt_"), desc.Name)
		_, ok := d.handlers[desc.Name]
		assert.True(t, ok, "descriptor %s has no handler", desc.Name)
		assert.NotNil(t, d.schemas[desc.Name])
	}
	assert.Len(t, d.handlers, len(Catalog()))
}
