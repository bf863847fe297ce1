// Package sampling validates createMessage requests, forwards them to
// the connected client for completion, and routes tagged completions
// back into Notion writes.
package sampling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const errPrefix = "Sampling request failed: "

// Message is a loosely typed sampling message. Content stays a raw map
// so malformed requests can be inspected and rejected with precise
// messages before anything reaches the client.
type Message struct {
	Role    string         `json:"role"`
	Content map[string]any `json:"content"`
}

// ModelHint names a suggested model.
type ModelHint struct {
	Name string `json:"name"`
}

// ModelPreferences carries the client's model selection priorities.
type ModelPreferences struct {
	Hints                []ModelHint `json:"hints,omitempty"`
	CostPriority         *float64    `json:"costPriority,omitempty"`
	SpeedPriority        *float64    `json:"speedPriority,omitempty"`
	IntelligencePriority *float64    `json:"intelligencePriority,omitempty"`
}

// Params are the createMessage parameters.
type Params struct {
	Messages         []Message         `json:"messages"`
	MaxTokens        int               `json:"maxTokens"`
	Temperature      *float64          `json:"temperature,omitempty"`
	IncludeContext   string            `json:"includeContext,omitempty"`
	SystemPrompt     string            `json:"systemPrompt,omitempty"`
	ModelPreferences *ModelPreferences `json:"modelPreferences,omitempty"`
}

// Request is a createMessage request with an optional callback tag that
// routes the completion into a Notion write.
type Request struct {
	Params   *Params `json:"params"`
	Callback string  `json:"callback,omitempty"`
}

// Validate checks a request and fails on the first violation.
func Validate(req *Request) error {
	if req == nil || req.Params == nil {
		return errors.New("Request must have params")
	}
	p := req.Params

	if len(p.Messages) == 0 {
		return errors.New("Request must have at least one message")
	}
	for _, m := range p.Messages {
		if err := validateMessage(m); err != nil {
			return err
		}
	}

	if p.MaxTokens <= 0 {
		return errors.New("maxTokens must be a positive number")
	}
	if p.Temperature != nil && (*p.Temperature < 0 || *p.Temperature > 1) {
		return errors.New("temperature must be a number between 0 and 1")
	}
	if p.IncludeContext != "" {
		switch p.IncludeContext {
		case "none", "thisServer", "allServers":
		default:
			return errors.New(`includeContext must be "none", "thisServer", or "allServers"`)
		}
	}
	if p.ModelPreferences != nil {
		for _, priority := range []*float64{
			p.ModelPreferences.CostPriority,
			p.ModelPreferences.SpeedPriority,
			p.ModelPreferences.IntelligencePriority,
		} {
			if priority != nil && (*priority < 0 || *priority > 1) {
				return errors.New("Model preference priorities must be numbers between 0 and 1")
			}
		}
	}
	return nil
}

func validateMessage(m Message) error {
	if m.Role != "user" && m.Role != "assistant" {
		return errors.New(`Message role must be either "user" or "assistant"`)
	}
	if m.Content == nil {
		return errors.New("Message must have a content object")
	}
	contentType, ok := m.Content["type"].(string)
	if !ok {
		return errors.New("Message content must have a type field")
	}
	switch contentType {
	case "text":
		if _, ok := m.Content["text"].(string); !ok {
			return errors.New("Text content must have a string text field")
		}
	case "image":
		if _, ok := m.Content["data"].(string); !ok {
			return errors.New("Image content must have a base64 data field")
		}
		if _, ok := m.Content["mimeType"].(string); !ok {
			return errors.New("Image content must have a mimeType field")
		}
	default:
		return errors.New(`Content type must be either "text" or "image"`)
	}
	return nil
}

// Host requests a completion from the connected client.
type Host interface {
	CreateMessage(ctx context.Context, req mcp.CreateMessageRequest) (*mcp.CreateMessageResult, error)
}

// Pipeline runs validated requests through the host and the callback
// resolver.
type Pipeline struct {
	host     Host
	resolver *Resolver
	log      *slog.Logger
}

// NewPipeline builds a pipeline over the given host and resolver.
func NewPipeline(host Host, resolver *Resolver, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{host: host, resolver: resolver, log: log}
}

// CreateMessage validates the request, asks the host for a completion,
// and resolves the callback when one is set.
func (p *Pipeline) CreateMessage(ctx context.Context, req *Request) (*mcp.CreateMessageResult, error) {
	if err := Validate(req); err != nil {
		return nil, tagError(err)
	}

	result, err := p.host.CreateMessage(ctx, toWire(req.Params))
	if err != nil {
		return nil, tagError(err)
	}

	if req.Callback != "" {
		result, err = p.resolver.Resolve(ctx, req.Callback, result)
		if err != nil {
			return nil, tagError(err)
		}
	}
	return result, nil
}

// toWire converts validated params into the protocol request.
func toWire(p *Params) mcp.CreateMessageRequest {
	messages := make([]mcp.SamplingMessage, len(p.Messages))
	for i, m := range p.Messages {
		var content any
		if t, _ := m.Content["type"].(string); t == "text" {
			text, _ := m.Content["text"].(string)
			content = mcp.NewTextContent(text)
		} else {
			data, _ := m.Content["data"].(string)
			mimeType, _ := m.Content["mimeType"].(string)
			content = mcp.ImageContent{Type: "image", Data: data, MIMEType: mimeType}
		}
		messages[i] = mcp.SamplingMessage{
			Role:    mcp.Role(m.Role),
			Content: content,
		}
	}

	params := mcp.CreateMessageParams{
		Messages:       messages,
		MaxTokens:      p.MaxTokens,
		SystemPrompt:   p.SystemPrompt,
		IncludeContext: p.IncludeContext,
	}
	if p.Temperature != nil {
		params.Temperature = *p.Temperature
	}
	if p.ModelPreferences != nil {
		prefs := &mcp.ModelPreferences{}
		for _, h := range p.ModelPreferences.Hints {
			prefs.Hints = append(prefs.Hints, mcp.ModelHint{Name: h.Name})
		}
		if p.ModelPreferences.CostPriority != nil {
			prefs.CostPriority = *p.ModelPreferences.CostPriority
		}
		if p.ModelPreferences.SpeedPriority != nil {
			prefs.SpeedPriority = *p.ModelPreferences.SpeedPriority
		}
		if p.ModelPreferences.IntelligencePriority != nil {
			prefs.IntelligencePriority = *p.ModelPreferences.IntelligencePriority
		}
		params.ModelPreferences = prefs
	}
	return mcp.CreateMessageRequest{CreateMessageParams: params}
}

// tagError prefixes an error exactly once.
func tagError(err error) error {
	if strings.HasPrefix(err.Error(), errPrefix) {
		return err
	}
	return fmt.Errorf("%s%s", errPrefix, err.Error())
}
