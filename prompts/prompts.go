// Package prompts holds the static prompt templates and the variable
// injector that binds caller arguments into their messages.
package prompts

import "fmt"

// Callback identifiers routing completions back into Notion writes.
const (
	CreatePageCallback = "systemprompt_create_notion_page_complex"
	EditPageCallback   = "systemprompt_edit_notion_page_complex"
)

// Template names.
const (
	PageCreatorName = "Notion Page Creator"
	PageEditorName  = "Notion Page Editor"
)

// Argument describes one declared template argument.
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Message is a role-tagged text message of a template.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Template is a reusable prompt: declared arguments, messages with
// {{variable}} tokens, and sampling metadata.
type Template struct {
	Name           string
	Description    string
	Arguments      []Argument
	Messages       []Message
	ResponseSchema string
	Callback       string
}

var templates = []Template{
	{
		Name:        PageCreatorName,
		Description: "Generates a rich, detailed Notion page that expands upon basic inputs into comprehensive, well-structured content",
		Arguments: []Argument{
			{
				Name:        "databaseId",
				Description: "The ID of the database to create the page in",
				Required:    true,
			},
			{
				Name:        "userInstructions",
				Description: "Basic instructions or outline for the page content that will be expanded into a comprehensive structure",
				Required:    true,
			},
		},
		Messages: []Message{
			{Role: "assistant", Text: pageCreatorInstructions},
			{Role: "user", Text: `
<input>
  <requestParams>
    <databaseId>{{databaseId}}</databaseId>
    <userInstructions>{{userInstructions}}</userInstructions>
  </requestParams>
</input>`},
		},
		ResponseSchema: PageCreatorResponseSchema,
		Callback:       CreatePageCallback,
	},
	{
		Name:        PageEditorName,
		Description: "Modifies an existing Notion page based on user instructions while preserving its core structure and content",
		Arguments: []Argument{
			{
				Name:        "pageId",
				Description: "The ID of the page to edit",
				Required:    true,
			},
			{
				Name:        "userInstructions",
				Description: "Instructions for how to modify the page content",
				Required:    true,
			},
		},
		Messages: []Message{
			{Role: "assistant", Text: pageEditorInstructions},
			{Role: "user", Text: `
<input>
  <requestParams>
    <pageId>{{pageId}}</pageId>
    <userInstructions>{{userInstructions}}</userInstructions>
  </requestParams>
  <currentPage>{{currentPage}}</currentPage>
</input>`},
		},
		ResponseSchema: PageEditorResponseSchema,
		Callback:       EditPageCallback,
	},
}

// Store serves the built-in templates.
type Store struct {
	templates []Template
}

// NewStore returns a store over the built-in templates.
func NewStore() *Store {
	return &Store{templates: templates}
}

// List returns all templates with their messages stripped. Listing is a
// catalog operation; messages are only materialized on Get.
func (s *Store) List() []Template {
	out := make([]Template, len(s.templates))
	for i, t := range s.templates {
		t.Messages = nil
		out[i] = t
	}
	return out
}

// Get returns the named template, messages included.
func (s *Store) Get(name string) (*Template, error) {
	for _, t := range s.templates {
		if t.Name == name {
			tc := t
			return &tc, nil
		}
	}
	return nil, fmt.Errorf("Prompt not found: %s", name)
}
