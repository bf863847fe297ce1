package sampling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/systemprompt-io/systemprompt-mcp-notion/notion"
	"github.com/systemprompt-io/systemprompt-mcp-notion/prompts"
	"github.com/systemprompt-io/systemprompt-mcp-notion/schema"
)

// NotionWriter is the slice of the Notion client the callbacks need.
type NotionWriter interface {
	CreatePage(ctx context.Context, params notion.CreatePageParams) (*notion.Page, error)
	UpdatePage(ctx context.Context, params notion.UpdatePageParams) (*notion.Page, error)
}

// Resolver turns tagged completions into Notion writes. Completions are
// validated against the template response schema before anything is
// sent upstream.
type Resolver struct {
	notion        NotionWriter
	creatorSchema *jsonschema.Schema
	editorSchema  *jsonschema.Schema
	log           *slog.Logger
}

// pageIDPattern is the hyphenated UUID form the Notion API hands out.
// The editor response schema is looser (any hex-and-hyphen string), so
// the edit path checks this separately before writing.
var pageIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// NewResolver builds a resolver over the given Notion client.
func NewResolver(writer NotionWriter, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		notion:        writer,
		creatorSchema: schema.MustCompile("page-creator.json", []byte(prompts.PageCreatorResponseSchema)),
		editorSchema:  schema.MustCompile("page-editor.json", []byte(prompts.PageEditorResponseSchema)),
		log:           log,
	}
}

// Resolve routes a completion by callback id. Unknown ids are logged
// and the completion is passed through unchanged.
func (r *Resolver) Resolve(ctx context.Context, callback string, result *mcp.CreateMessageResult) (*mcp.CreateMessageResult, error) {
	switch callback {
	case prompts.CreatePageCallback:
		return r.createPage(ctx, result)
	case prompts.EditPageCallback:
		return r.editPage(ctx, result)
	default:
		r.log.Warn("unknown callback type", "callback", callback)
		return result, nil
	}
}

func (r *Resolver) createPage(ctx context.Context, result *mcp.CreateMessageResult) (*mcp.CreateMessageResult, error) {
	payload, err := completionPayload(result, r.creatorSchema)
	if err != nil {
		return nil, err
	}

	var params notion.CreatePageParams
	if err := remarshal(payload, &params); err != nil {
		return nil, err
	}
	page, err := r.notion.CreatePage(ctx, params)
	if err != nil {
		return nil, err
	}
	return pageResult(page, result)
}

func (r *Resolver) editPage(ctx context.Context, result *mcp.CreateMessageResult) (*mcp.CreateMessageResult, error) {
	payload, err := completionPayload(result, r.editorSchema)
	if err != nil {
		return nil, err
	}

	var params notion.UpdatePageParams
	if err := remarshal(payload, &params); err != nil {
		return nil, err
	}
	if !pageIDPattern.MatchString(params.PageID) {
		return nil, errors.New("Invalid page ID format")
	}
	page, err := r.notion.UpdatePage(ctx, params)
	if err != nil {
		return nil, err
	}
	return pageResult(page, result)
}

// completionPayload extracts the completion text, parses it as JSON,
// and validates it against the response schema.
func completionPayload(result *mcp.CreateMessageResult, compiled *jsonschema.Schema) (map[string]any, error) {
	text, err := CompletionText(result)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	if err := schema.Validate(compiled, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CompletionText extracts the text of a completion, rejecting non-text
// content.
func CompletionText(result *mcp.CreateMessageResult) (string, error) {
	switch c := result.Content.(type) {
	case mcp.TextContent:
		return c.Text, nil
	case *mcp.TextContent:
		return c.Text, nil
	case map[string]any:
		if t, _ := c["type"].(string); t == "text" {
			if text, ok := c["text"].(string); ok {
				return text, nil
			}
		}
	}
	return "", errors.New("Expected text response from LLM")
}

// remarshal converts the validated payload into the typed params.
func remarshal(payload map[string]any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// pageResult wraps the written page as an assistant text message.
func pageResult(page *notion.Page, prior *mcp.CreateMessageResult) (*mcp.CreateMessageResult, error) {
	data, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}
	return &mcp.CreateMessageResult{
		SamplingMessage: mcp.SamplingMessage{
			Role:    mcp.RoleAssistant,
			Content: mcp.NewTextContent(string(data)),
		},
		Model:      prior.Model,
		StopReason: prior.StopReason,
	}, nil
}
