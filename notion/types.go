package notion

import "encoding/json"

// Parent identifies where a page lives. Exactly one of DatabaseID or
// PageID is set, or Workspace is true for top-level pages.
type Parent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// Page is the projection of a Notion page exposed to MCP clients.
type Page struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
	Properties     map[string]any `json:"properties"`
	Parent         Parent         `json:"parent"`
}

// Database is the projection of a Notion database.
type Database struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
	Properties     map[string]any `json:"properties"`
}

// Comment is the projection of a Notion comment.
type Comment struct {
	ID             string `json:"id"`
	DiscussionID   string `json:"discussionId"`
	Content        string `json:"content"`
	CreatedTime    string `json:"createdTime"`
	LastEditedTime string `json:"lastEditedTime"`
	ParentID       string `json:"parentId,omitempty"`
}

// PageList is a page of search/list results.
type PageList struct {
	Pages      []Page `json:"pages"`
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// CreatePageParams mirrors the Notion create-page request body.
type CreatePageParams struct {
	Parent     map[string]any   `json:"parent"`
	Properties map[string]any   `json:"properties"`
	Children   []map[string]any `json:"children,omitempty"`
}

// UpdatePageParams mirrors the Notion update-page request body. Children,
// when present, are appended to the page after the property update.
type UpdatePageParams struct {
	PageID     string           `json:"pageId"`
	Properties map[string]any   `json:"properties,omitempty"`
	Children   []map[string]any `json:"children,omitempty"`
	Archived   *bool            `json:"archived,omitempty"`
}

// Wire-level objects as returned by the Notion API.

type pageObject struct {
	Object         string         `json:"object"`
	ID             string         `json:"id"`
	URL            string         `json:"url"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
	Properties     map[string]any `json:"properties"`
	Parent         map[string]any `json:"parent"`
}

type databaseObject struct {
	Object         string         `json:"object"`
	ID             string         `json:"id"`
	URL            string         `json:"url"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
	Title          []any          `json:"title"`
	Properties     map[string]any `json:"properties"`
}

type commentObject struct {
	ID             string `json:"id"`
	DiscussionID   string `json:"discussion_id"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
	RichText       []struct {
		PlainText string `json:"plain_text"`
	} `json:"rich_text"`
	Parent struct {
		CommentID string `json:"comment_id"`
	} `json:"parent"`
}

type listEnvelope struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor"`
}
