package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/systemprompt-io/systemprompt-mcp-notion/notion"
	"github.com/systemprompt-io/systemprompt-mcp-notion/prompts"
	"github.com/systemprompt-io/systemprompt-mcp-notion/sampling"
	"github.com/systemprompt-io/systemprompt-mcp-notion/schema"
)

const errPrefix = "Tool call failed: "

// NotionAPI is the slice of the Notion client the dispatcher uses.
type NotionAPI interface {
	ListPages(ctx context.Context, maxResults int) (*notion.PageList, error)
	SearchPages(ctx context.Context, query string, maxResults int) (*notion.PageList, error)
	SearchPagesByTitle(ctx context.Context, title string, maxResults int) ([]notion.Page, error)
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
	CreatePage(ctx context.Context, params notion.CreatePageParams) (*notion.Page, error)
	UpdatePage(ctx context.Context, params notion.UpdatePageParams) (*notion.Page, error)
	ArchivePage(ctx context.Context, pageID string) (*notion.Page, error)
	GetPageProperty(ctx context.Context, pageID, propertyID string) (map[string]any, error)
	SearchDatabases(ctx context.Context, maxResults int) ([]notion.Database, error)
	QueryDatabase(ctx context.Context, databaseID string, maxResults int) ([]notion.Page, error)
	CreateComment(ctx context.Context, pageID, content, discussionID string) (*notion.Comment, error)
	ListComments(ctx context.Context, pageID string) ([]notion.Comment, error)
	ListBlockChildren(ctx context.Context, blockID string) ([]map[string]any, error)
}

// Sampler runs a sampling request through the pipeline.
type Sampler interface {
	CreateMessage(ctx context.Context, req *sampling.Request) (*mcp.CreateMessageResult, error)
}

// PromptSource resolves prompt templates by name.
type PromptSource interface {
	Get(name string) (*prompts.Template, error)
}

type handlerFunc func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)

// Dispatcher validates tool arguments and routes calls to handlers.
type Dispatcher struct {
	notion   NotionAPI
	sampler  Sampler
	prompts  PromptSource
	handlers map[string]handlerFunc
	schemas  map[string]*jsonschema.Schema
	log      *slog.Logger
}

// NewDispatcher builds the dispatcher over the full catalog. The
// handler map and argument schemas are fixed at construction.
func NewDispatcher(api NotionAPI, sampler Sampler, store PromptSource, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		notion:   api,
		sampler:  sampler,
		prompts:  store,
		handlers: make(map[string]handlerFunc),
		schemas:  make(map[string]*jsonschema.Schema),
		log:      log,
	}

	for _, desc := range Catalog() {
		d.schemas[desc.Name] = schema.MustCompile(desc.Name+".json", []byte(desc.Schema))
	}

	d.handlers[ListPages] = d.listPages
	d.handlers[ListDatabases] = d.listDatabases
	d.handlers[SearchPages] = d.searchPages
	d.handlers[SearchPagesTitle] = d.searchPagesByTitle
	d.handlers[GetPage] = d.getPage
	d.handlers[GetDatabaseItems] = d.getDatabaseItems
	d.handlers[GetPageProperty] = d.getPageProperty
	d.handlers[GetPageBlocks] = d.getPageBlocks
	d.handlers[CreatePage] = d.createPage
	d.handlers[UpdatePage] = d.updatePage
	d.handlers[DeletePage] = d.deletePage
	d.handlers[CreateComment] = d.createComment
	d.handlers[GetComments] = d.getComments
	d.handlers[CreatePageComplex] = d.samplingHandler(CreatePageComplex)
	d.handlers[UpdatePageComplex] = d.samplingHandler(UpdatePageComplex)

	return d
}

// Dispatch looks up the tool, validates the arguments against its
// schema, and runs the handler. Every failure carries the dispatch
// error prefix exactly once.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := d.handlers[name]
	if !ok {
		return nil, wrapError(fmt.Errorf("Unknown tool: %s", name))
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := schema.Validate(d.schemas[name], args); err != nil {
		return nil, wrapError(err)
	}

	result, err := handler(ctx, args)
	if err != nil {
		d.log.Error("tool call failed", "tool", name, "error", err)
		return nil, wrapError(err)
	}
	return result, nil
}

// wrapError prefixes a dispatch error exactly once.
func wrapError(err error) error {
	if strings.HasPrefix(err.Error(), errPrefix) {
		return err
	}
	return fmt.Errorf("%s%s", errPrefix, err.Error())
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	if v, ok := args[key].(int); ok {
		return v
	}
	return 0
}
