// systemprompt-mcp-notion is an MCP stdio server that exposes Notion
// workspace operations (pages, databases, comments) as tools, prompts,
// and resources, and can turn client-side model completions into
// structured Notion writes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/systemprompt-io/systemprompt-mcp-notion/config"
	"github.com/systemprompt-io/systemprompt-mcp-notion/notion"
	"github.com/systemprompt-io/systemprompt-mcp-notion/prompts"
	"github.com/systemprompt-io/systemprompt-mcp-notion/resources"
	"github.com/systemprompt-io/systemprompt-mcp-notion/sampling"
	"github.com/systemprompt-io/systemprompt-mcp-notion/systemprompt"
	"github.com/systemprompt-io/systemprompt-mcp-notion/tools"
)

func main() {
	// Stdout belongs to the transport; all logging goes to stderr.
	level := slog.LevelInfo
	if os.Getenv("NOTION_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	notionClient, err := notion.NewClient(cfg.NotionAPIKey, notion.WithLogger(log))
	if err != nil {
		return err
	}
	contentService, err := systemprompt.NewClient(cfg.SystemPromptAPIKey,
		systemprompt.WithBaseURL(cfg.SystemPromptBaseURL),
		systemprompt.WithLogger(log),
	)
	if err != nil {
		return err
	}

	store := prompts.NewStore()
	resolver := sampling.NewResolver(notionClient, log)

	host := &serverHost{}
	pipeline := sampling.NewPipeline(host, resolver, log)
	dispatcher := tools.NewDispatcher(notionClient, pipeline, store, log)

	// The emitter notifies through the server, and the server's session
	// hook announces through the emitter; bind the emitter after the
	// server exists. Sessions only register once ServeStdio runs.
	var emitter *resources.Emitter
	hooks := sessionHooks(func() { announceRemoteContent(emitter, log) })
	s := buildServer(dispatcher, store, hooks, log)
	host.fallback = s
	emitter = resources.NewEmitter(contentService, s, log)

	log.Info("starting server", "name", serverName, "version", serverVersion)
	return server.ServeStdio(s)
}

// announceRemoteContent pushes list-changed notifications so a newly
// connected client picks up the remotely managed prompts and blocks.
// Failures are logged; the server is usable without the content
// service.
func announceRemoteContent(emitter *resources.Emitter, log *slog.Logger) {
	go func() {
		ctx := context.Background()
		if err := emitter.PromptsChanged(ctx); err != nil {
			log.Warn("failed to announce remote prompts", "error", err)
		}
		if err := emitter.ResourcesChanged(ctx); err != nil {
			log.Warn("failed to announce remote resources", "error", err)
		}
	}()
}
