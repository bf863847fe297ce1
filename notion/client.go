// Package notion implements a typed client for the Notion REST API
// covering pages, databases, comments, and block children.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	notionAPIBase    = "https://api.notion.com/v1"
	notionAPIVersion = "2022-06-28"
)

// Default result limits per operation.
const (
	DefaultPageLimit     = 50
	DefaultTitleLimit    = 10
	DefaultDatabaseLimit = 50
	DefaultItemLimit     = 10
)

// Client handles Notion API operations.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client authenticated with the given integration token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("Notion API token is required")
	}
	c := &Client{
		token:   token,
		baseURL: notionAPIBase,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListPages returns pages sorted by last edited time, most recent first.
func (c *Client) ListPages(ctx context.Context, maxResults int) (*PageList, error) {
	if maxResults <= 0 {
		maxResults = DefaultPageLimit
	}
	return c.searchPages(ctx, "", maxResults)
}

// SearchPages runs a full-text search across pages.
func (c *Client) SearchPages(ctx context.Context, query string, maxResults int) (*PageList, error) {
	if maxResults <= 0 {
		maxResults = DefaultPageLimit
	}
	return c.searchPages(ctx, query, maxResults)
}

// SearchPagesByTitle searches pages and keeps only those whose title
// contains the given text, case-insensitively. Notion's search endpoint
// matches content too, so the title filter is applied client-side.
func (c *Client) SearchPagesByTitle(ctx context.Context, title string, maxResults int) ([]Page, error) {
	if maxResults <= 0 {
		maxResults = DefaultTitleLimit
	}
	list, err := c.searchPages(ctx, title, 100)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(title)
	var pages []Page
	for _, p := range list.Pages {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			pages = append(pages, p)
			if len(pages) >= maxResults {
				break
			}
		}
	}
	return pages, nil
}

func (c *Client) searchPages(ctx context.Context, query string, pageSize int) (*PageList, error) {
	env, err := c.search(ctx, query, "page", pageSize)
	if err != nil {
		return nil, err
	}
	pages := make([]Page, 0, len(env.Results))
	for _, raw := range env.Results {
		var obj pageObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		page, err := mapPage(obj)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return &PageList{
		Pages:      pages,
		HasMore:    env.HasMore,
		NextCursor: env.NextCursor,
	}, nil
}

// SearchDatabases returns databases visible to the integration.
func (c *Client) SearchDatabases(ctx context.Context, maxResults int) ([]Database, error) {
	if maxResults <= 0 {
		maxResults = DefaultDatabaseLimit
	}
	env, err := c.search(ctx, "", "database", maxResults)
	if err != nil {
		return nil, err
	}
	databases := make([]Database, 0, len(env.Results))
	for _, raw := range env.Results {
		var obj databaseObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		databases = append(databases, mapDatabase(obj))
	}
	return databases, nil
}

func (c *Client) search(ctx context.Context, query, object string, pageSize int) (*listEnvelope, error) {
	if pageSize > 100 {
		pageSize = 100
	}
	body := map[string]any{
		"page_size": pageSize,
		"filter": map[string]any{
			"property": "object",
			"value":    object,
		},
		"sort": map[string]any{
			"direction": "descending",
			"timestamp": "last_edited_time",
		},
	}
	if query != "" {
		body["query"] = query
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/search", body)
	if err != nil {
		return nil, err
	}
	var env listEnvelope
	if err := json.Unmarshal(resp, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &env, nil
}

// GetPage retrieves a single page by ID.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/pages/"+url.PathEscape(pageID), nil)
	if err != nil {
		return nil, err
	}
	return parsePage(resp)
}

// CreatePage creates a page under the given parent.
func (c *Client) CreatePage(ctx context.Context, params CreatePageParams) (*Page, error) {
	body := map[string]any{
		"parent":     params.Parent,
		"properties": params.Properties,
	}
	if len(params.Children) > 0 {
		body["children"] = params.Children
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/pages", body)
	if err != nil {
		return nil, err
	}
	return parsePage(resp)
}

// UpdatePage patches page properties and, when children are given,
// appends them to the page content afterwards.
func (c *Client) UpdatePage(ctx context.Context, params UpdatePageParams) (*Page, error) {
	body := map[string]any{}
	if params.Properties != nil {
		body["properties"] = params.Properties
	}
	if params.Archived != nil {
		body["archived"] = *params.Archived
	}
	resp, err := c.doRequest(ctx, http.MethodPatch, "/pages/"+url.PathEscape(params.PageID), body)
	if err != nil {
		return nil, err
	}
	page, err := parsePage(resp)
	if err != nil {
		return nil, err
	}

	if len(params.Children) > 0 {
		appendBody := map[string]any{"children": params.Children}
		path := "/blocks/" + url.PathEscape(params.PageID) + "/children"
		if _, err := c.doRequest(ctx, http.MethodPatch, path, appendBody); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// ArchivePage moves a page to the trash.
func (c *Client) ArchivePage(ctx context.Context, pageID string) (*Page, error) {
	archived := true
	return c.UpdatePage(ctx, UpdatePageParams{PageID: pageID, Archived: &archived})
}

// GetPageProperty retrieves a single property item of a page.
func (c *Client) GetPageProperty(ctx context.Context, pageID, propertyID string) (map[string]any, error) {
	path := "/pages/" + url.PathEscape(pageID) + "/properties/" + url.PathEscape(propertyID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var prop map[string]any
	if err := json.Unmarshal(resp, &prop); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return prop, nil
}

// QueryDatabase returns the pages contained in a database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, maxResults int) ([]Page, error) {
	if maxResults <= 0 {
		maxResults = DefaultItemLimit
	}
	if maxResults > 100 {
		maxResults = 100
	}
	body := map[string]any{
		"page_size": maxResults,
	}
	path := "/databases/" + url.PathEscape(databaseID) + "/query"
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	var env listEnvelope
	if err := json.Unmarshal(resp, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	pages := make([]Page, 0, len(env.Results))
	for _, raw := range env.Results {
		var obj pageObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		page, err := mapPage(obj)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// CreateComment adds a comment to a page, or to an existing discussion
// when discussionID is set.
func (c *Client) CreateComment(ctx context.Context, pageID, content, discussionID string) (*Comment, error) {
	body := map[string]any{
		"rich_text": []map[string]any{
			{"text": map[string]any{"content": content}},
		},
	}
	if discussionID != "" {
		body["discussion_id"] = discussionID
	} else {
		body["parent"] = map[string]any{"page_id": pageID}
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/comments", body)
	if err != nil {
		return nil, err
	}
	var obj commentObject
	if err := json.Unmarshal(resp, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	comment := mapComment(obj)
	return &comment, nil
}

// ListComments fetches all comments on a page or block.
func (c *Client) ListComments(ctx context.Context, pageID string) ([]Comment, error) {
	path := "/comments?block_id=" + url.QueryEscape(pageID) + "&page_size=100"
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Results []commentObject `json:"results"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	comments := make([]Comment, 0, len(result.Results))
	for _, obj := range result.Results {
		comments = append(comments, mapComment(obj))
	}
	return comments, nil
}

// ListBlockChildren fetches the immediate child blocks of a page or
// block, following pagination cursors.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) ([]map[string]any, error) {
	var allBlocks []map[string]any
	cursor := ""

	for {
		path := "/blocks/" + url.PathEscape(blockID) + "/children?page_size=100"
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}

		resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		var result struct {
			Results    []map[string]any `json:"results"`
			HasMore    bool             `json:"has_more"`
			NextCursor string           `json:"next_cursor"`
		}
		if err := json.Unmarshal(resp, &result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		allBlocks = append(allBlocks, result.Results...)

		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	return allBlocks, nil
}

func parsePage(data []byte) (*Page, error) {
	var obj pageObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	page, err := mapPage(obj)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// doRequest makes an authenticated request to the Notion API.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	var bodyLen int
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyLen = len(data)
		bodyReader = bytes.NewReader(data)
	}

	c.log.Debug("notion request", "method", method, "path", path, "body_bytes", bodyLen)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("notion response", "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(start))

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
