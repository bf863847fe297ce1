package resources

import (
	"context"
	"log/slog"

	"github.com/systemprompt-io/systemprompt-mcp-notion/systemprompt"
)

// ContentService fetches the remote prompts and blocks backing the
// list-changed notifications.
type ContentService interface {
	GetAllPrompts(ctx context.Context) ([]systemprompt.Prompt, error)
	ListBlocks(ctx context.Context) ([]systemprompt.Block, error)
}

// Notifier pushes a notification to every connected client.
type Notifier interface {
	SendNotificationToAllClients(method string, params map[string]any)
}

// Emitter reshapes remote content into MCP list results and broadcasts
// list-changed notifications.
type Emitter struct {
	service  ContentService
	notifier Notifier
	log      *slog.Logger
}

// NewEmitter builds an emitter over the content service.
func NewEmitter(service ContentService, notifier Notifier, log *slog.Logger) *Emitter {
	if log == nil {
		log = slog.Default()
	}
	return &Emitter{service: service, notifier: notifier, log: log}
}

// PromptsChanged fetches the remote prompts and broadcasts a prompt
// list-changed notification carrying the reshaped list.
func (e *Emitter) PromptsChanged(ctx context.Context) error {
	remote, err := e.service.GetAllPrompts(ctx)
	if err != nil {
		return err
	}
	list := make([]map[string]any, len(remote))
	for i, p := range remote {
		list[i] = map[string]any{
			"name":        p.Metadata.Title,
			"description": p.Metadata.Description,
			"arguments":   []any{},
		}
	}
	e.log.Debug("broadcasting prompt list change", "count", len(list))
	e.notifier.SendNotificationToAllClients("notifications/prompts/list_changed", map[string]any{
		"prompts": list,
	})
	return nil
}

// ResourcesChanged fetches the remote blocks and broadcasts a resource
// list-changed notification carrying the reshaped list.
func (e *Emitter) ResourcesChanged(ctx context.Context) error {
	blocks, err := e.service.ListBlocks(ctx)
	if err != nil {
		return err
	}
	list := make([]map[string]any, len(blocks))
	for i, b := range blocks {
		list[i] = map[string]any{
			"uri":         "resource:///block/" + b.ID,
			"name":        b.Metadata.Title,
			"description": b.Metadata.Description,
			"mimeType":    AgentMIMEType,
		}
	}
	e.log.Debug("broadcasting resource list change", "count", len(list))
	e.notifier.SendNotificationToAllClients("notifications/resources/list_changed", map[string]any{
		"resources": list,
	})
	return nil
}
