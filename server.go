package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/systemprompt-io/systemprompt-mcp-notion/prompts"
	"github.com/systemprompt-io/systemprompt-mcp-notion/resources"
	"github.com/systemprompt-io/systemprompt-mcp-notion/tools"
)

const (
	serverName    = "systemprompt-mcp-notion"
	serverVersion = "1.0.0"
)

// serverHost forwards sampling requests to the client on the session
// carried by the context.
type serverHost struct {
	fallback *server.MCPServer
}

func (h *serverHost) CreateMessage(ctx context.Context, req mcp.CreateMessageRequest) (*mcp.CreateMessageResult, error) {
	s := server.ServerFromContext(ctx)
	if s == nil {
		s = h.fallback
	}
	return s.RequestSampling(ctx, req)
}

// sessionHooks runs announce whenever a client session registers, so
// list-changed broadcasts reach a connected client.
func sessionHooks(announce func()) *server.Hooks {
	hooks := &server.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		announce()
	})
	return hooks
}

// buildServer wires the dispatcher, prompt store, and agent resource
// into an MCP server with sampling enabled.
func buildServer(dispatcher *tools.Dispatcher, store *prompts.Store, hooks *server.Hooks, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithInstructions(resources.AgentDescription),
		server.WithHooks(hooks),
	)
	s.EnableSampling()

	toolHandler := makeToolHandler(dispatcher)
	for _, desc := range tools.Catalog() {
		tool := mcp.NewToolWithRawSchema(desc.Name, desc.Description, json.RawMessage(desc.Schema))
		s.AddTool(tool, toolHandler)
	}

	promptHandler := makePromptHandler(store)
	for _, tmpl := range store.List() {
		s.AddPrompt(promptDefinition(tmpl), promptHandler)
	}

	s.AddResource(mcp.NewResource(
		resources.AgentURI,
		resources.AgentName,
		mcp.WithResourceDescription(resources.AgentDescription),
		mcp.WithMIMEType(resources.AgentMIMEType),
	), handleReadResource)

	return s
}

func makeToolHandler(dispatcher *tools.Dispatcher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		result, err := dispatcher.Dispatch(ctx, req.Params.Name, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return result, nil
	}
}

func makePromptHandler(store *prompts.Store) server.PromptHandlerFunc {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		tmpl, err := store.Get(req.Params.Name)
		if err != nil {
			return nil, err
		}
		if len(tmpl.Messages) == 0 {
			return nil, fmt.Errorf("Messages not found for prompt: %s", tmpl.Name)
		}

		messages := tmpl.Messages
		if len(req.Params.Arguments) > 0 {
			vars := make(map[string]any, len(req.Params.Arguments))
			for k, v := range req.Params.Arguments {
				vars[k] = v
			}
			messages, err = prompts.InjectMessages(messages, vars)
			if err != nil {
				return nil, err
			}
		}

		out := make([]mcp.PromptMessage, len(messages))
		for i, m := range messages {
			out[i] = mcp.NewPromptMessage(mcp.Role(m.Role), mcp.NewTextContent(m.Text))
		}
		return mcp.NewGetPromptResult(tmpl.Description, out), nil
	}
}

func promptDefinition(tmpl prompts.Template) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(tmpl.Description)}
	for _, arg := range tmpl.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(arg.Description)}
		if arg.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(arg.Name, argOpts...))
	}
	return mcp.NewPrompt(tmpl.Name, opts...)
}

func handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := resources.ReadAgent(req.Params.URI)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: resources.AgentMIMEType,
			Text:     text,
		},
	}, nil
}
