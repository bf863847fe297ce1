package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/systemprompt-io/systemprompt-mcp-notion/notion"
	"github.com/systemprompt-io/systemprompt-mcp-notion/prompts"
	"github.com/systemprompt-io/systemprompt-mcp-notion/sampling"
)

// resourceResult wraps a value as an embedded JSON resource.
func resourceResult(uri string, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultResource(string(data), mcp.TextResourceContents{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}), nil
}

func (d *Dispatcher) listPages(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	list, err := d.notion.ListPages(ctx, intArg(args, "maxResults"))
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages", list.Pages)
}

func (d *Dispatcher) listDatabases(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	databases, err := d.notion.SearchDatabases(ctx, intArg(args, "maxResults"))
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://databases", databases)
}

func (d *Dispatcher) searchPages(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	list, err := d.notion.SearchPages(ctx, stringArg(args, "query"), intArg(args, "maxResults"))
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages", list.Pages)
}

func (d *Dispatcher) searchPagesByTitle(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	pages, err := d.notion.SearchPagesByTitle(ctx, stringArg(args, "title"), intArg(args, "maxResults"))
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages", pages)
}

func (d *Dispatcher) getPage(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	page, err := d.notion.GetPage(ctx, stringArg(args, "pageId"))
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages/"+page.ID, page)
}

func (d *Dispatcher) getDatabaseItems(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	databaseID := stringArg(args, "databaseId")
	pages, err := d.notion.QueryDatabase(ctx, databaseID, intArg(args, "maxResults"))
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://databases/"+databaseID+"/items", pages)
}

func (d *Dispatcher) getPageProperty(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	pageID := stringArg(args, "pageId")
	propertyID := stringArg(args, "propertyId")
	prop, err := d.notion.GetPageProperty(ctx, pageID, propertyID)
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages/"+pageID+"/properties/"+propertyID, prop)
}

func (d *Dispatcher) getPageBlocks(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	pageID := stringArg(args, "pageId")
	blocks, err := d.notion.ListBlockChildren(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages/"+pageID+"/blocks", blocks)
}

func (d *Dispatcher) createPage(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	rawParent, ok := args["parent"].(map[string]any)
	if !ok {
		return nil, errors.New("Parent must be a valid object")
	}

	var parent map[string]any
	if id, ok := rawParent["database_id"].(string); ok && id != "" {
		parent = map[string]any{"database_id": id, "type": "database_id"}
	} else if id, ok := rawParent["page_id"].(string); ok && id != "" {
		parent = map[string]any{"page_id": id, "type": "page_id"}
	} else {
		return nil, errors.New("Parent must have either database_id or page_id")
	}

	properties, ok := args["properties"].(map[string]any)
	if !ok {
		return nil, errors.New("Properties must be a valid object")
	}
	if _, inDatabase := parent["database_id"]; inDatabase {
		title, ok := properties["title"].(map[string]any)
		if !ok || title["title"] == nil {
			return nil, errors.New("When creating a page in a database, properties must include a title field")
		}
	}

	params := notion.CreatePageParams{
		Parent:     parent,
		Properties: properties,
		Children:   blockList(args["children"]),
	}
	page, err := d.notion.CreatePage(ctx, params)
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages/"+page.ID, page)
}

func (d *Dispatcher) updatePage(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	properties, _ := args["properties"].(map[string]any)
	page, err := d.notion.UpdatePage(ctx, notion.UpdatePageParams{
		PageID:     stringArg(args, "pageId"),
		Properties: properties,
	})
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages/"+page.ID, page)
}

func (d *Dispatcher) deletePage(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	page, err := d.notion.ArchivePage(ctx, stringArg(args, "pageId"))
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages/"+page.ID, page)
}

func (d *Dispatcher) createComment(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	comment, err := d.notion.CreateComment(ctx,
		stringArg(args, "pageId"),
		stringArg(args, "content"),
		stringArg(args, "discussionId"),
	)
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://comments/"+comment.ID, comment)
}

func (d *Dispatcher) getComments(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	pageID := stringArg(args, "pageId")
	comments, err := d.notion.ListComments(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return resourceResult("notion://pages/"+pageID+"/comments", comments)
}

// samplingHandler builds the handler for a sampling-backed tool: it
// fetches the template, injects the call arguments, and runs the
// pipeline with the tool's callback.
func (d *Dispatcher) samplingHandler(name string) handlerFunc {
	var desc Descriptor
	for _, c := range Catalog() {
		if c.Name == name {
			desc = c
			break
		}
	}
	return func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
		if desc.Sampling == nil {
			return nil, errors.New("Tool is missing required sampling configuration")
		}
		tmpl, err := d.prompts.Get(desc.Sampling.PromptName)
		if err != nil {
			return nil, err
		}

		vars := make(map[string]any, len(args)+1)
		for k, v := range args {
			vars[k] = v
		}
		if desc.Sampling.RequiresExistingContent {
			blocks, err := d.notion.ListBlockChildren(ctx, stringArg(args, "pageId"))
			if err != nil {
				return nil, err
			}
			snapshot, err := json.Marshal(blocks)
			if err != nil {
				return nil, err
			}
			vars["currentPage"] = string(snapshot)
		}

		messages, err := prompts.InjectMessages(tmpl.Messages, vars)
		if err != nil {
			return nil, err
		}

		temperature := desc.Sampling.Temperature
		req := &sampling.Request{
			Params: &sampling.Params{
				Messages:    toSamplingMessages(messages),
				MaxTokens:   desc.Sampling.MaxTokens,
				Temperature: &temperature,
			},
			Callback: tmpl.Callback,
		}
		result, err := d.sampler.CreateMessage(ctx, req)
		if err != nil {
			return nil, err
		}
		text, err := sampling.CompletionText(result)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(text), nil
	}
}

func toSamplingMessages(messages []prompts.Message) []sampling.Message {
	out := make([]sampling.Message, len(messages))
	for i, m := range messages {
		out[i] = sampling.Message{
			Role:    m.Role,
			Content: map[string]any{"type": "text", "text": m.Text},
		}
	}
	return out
}

func blockList(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var blocks []map[string]any
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			blocks = append(blocks, m)
		}
	}
	return blocks
}
