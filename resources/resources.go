// Package resources serves the static agent resource and pushes
// list-changed notifications fed by the SystemPrompt content service.
package resources

import (
	"encoding/json"
	"errors"
	"regexp"
)

const agentInstruction = `You are a specialized agent with deep expertise in Notion workspace management and content organization. Your capabilities include:

1. Page Management:
- Search and navigate Notion pages
- Create new pages with structured content
- Update existing pages
- Organize content hierarchically
- Manage page properties effectively

2. Database Operations:
- List and explore available databases
- Query database contents
- Organize database items
- Track and update database entries
- Create structured database views

3. Content Organization:
- Structure information effectively
- Maintain consistent page layouts
- Create linked references between pages
- Organize content in databases
- Implement effective tagging systems

4. Collaboration Features:
- Add and manage comments on pages
- Participate in page discussions
- Track page changes and updates
- Maintain clear communication threads
- Support team collaboration

You have access to specialized Notion tools for these operations. Always select the most appropriate tool for the task and execute operations efficiently while maintaining high quality and reliability. When working with Notion content, ensure proper organization, clear structure, and effective use of Notion's features for optimal workspace management.`

// Agent resource identity.
const (
	AgentURI         = "resource:///block/default"
	AgentName        = "Systemprompt Notion Agent"
	AgentDescription = "An expert agent for managing and organizing content in Notion workspaces"
	AgentMIMEType    = "text/plain"
)

// agentResource is the full agent definition served on read.
var agentResource = map[string]any{
	"name":        AgentName,
	"description": AgentDescription,
	"instruction": agentInstruction,
	"voice":       "Kore",
	"config": map[string]any{
		"model": "models/gemini-2.0-flash-exp",
		"generationConfig": map[string]any{
			"responseModalities": "audio",
			"speechConfig": map[string]any{
				"voiceConfig": map[string]any{
					"prebuiltVoiceConfig": map[string]any{
						"voiceName": "Kore",
					},
				},
			},
		},
	},
}

var blockURIPattern = regexp.MustCompile(`^resource:///block/(.+)$`)

// ParseBlockURI extracts the block id from a resource:///block/{id} URI.
func ParseBlockURI(uri string) (string, error) {
	m := blockURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", errors.New("Invalid resource URI format - expected resource:///block/{id}")
	}
	return m[1], nil
}

// ReadAgent returns the serialized agent definition for the given URI.
// Only the default block exists locally.
func ReadAgent(uri string) (string, error) {
	blockID, err := ParseBlockURI(uri)
	if err != nil {
		return "", err
	}
	if blockID != "default" {
		return "", errors.New("Resource not found")
	}
	data, err := json.Marshal(agentResource)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
