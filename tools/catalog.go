// Package tools defines the tool catalog and the dispatcher that
// validates and routes tool calls.
package tools

import "github.com/systemprompt-io/systemprompt-mcp-notion/prompts"

// SamplingConfig attaches a prompt-driven completion to a tool.
type SamplingConfig struct {
	PromptName              string
	MaxTokens               int
	Temperature             float64
	RequiresExistingContent bool
}

// Descriptor declares one tool: its name, description, raw JSON input
// schema, and optional sampling configuration.
type Descriptor struct {
	Name        string
	Description string
	Schema      string
	Sampling    *SamplingConfig
}

// Tool names. The catalog is a closed set.
const (
	ListPages         = "systemprompt_list_notion_pages"
	ListDatabases     = "systemprompt_list_notion_databases"
	SearchPages       = "systemprompt_search_notion_pages"
	SearchPagesTitle  = "systemprompt_search_notion_pages_by_title"
	GetPage           = "systemprompt_get_notion_page"
	GetDatabaseItems  = "systemprompt_get_database_items"
	GetPageProperty   = "systemprompt_get_notion_page_property"
	GetPageBlocks     = "systemprompt_get_notion_page_blocks"
	CreatePage        = "systemprompt_create_notion_page"
	UpdatePage        = "systemprompt_update_notion_page"
	DeletePage        = "systemprompt_delete_notion_page"
	CreateComment     = "systemprompt_create_notion_comment"
	GetComments       = "systemprompt_get_notion_comments"
	CreatePageComplex = "systemprompt_create_notion_page_complex"
	UpdatePageComplex = "systemprompt_update_notion_page_complex"
)

var catalog = []Descriptor{
	{
		Name:        ListPages,
		Description: "Lists all accessible Notion pages in your workspace, sorted by last edited time. Returns key metadata including title, URL, and last edited timestamp.",
		Schema: `{
  "type": "object",
  "properties": {
    "maxResults": {
      "type": "number",
      "description": "Maximum number of pages to return in the response. Defaults to 50 if not specified."
    }
  },
  "additionalProperties": false
}`,
	},
	{
		Name:        ListDatabases,
		Description: "Lists all accessible Notion databases in your workspace, sorted by last edited time. Returns key metadata including database title, schema, and last edited timestamp.",
		Schema: `{
  "type": "object",
  "properties": {
    "maxResults": {
      "type": "number",
      "description": "Maximum number of databases to return in the response. Defaults to 50 if not specified."
    }
  },
  "additionalProperties": false
}`,
	},
	{
		Name:        SearchPages,
		Description: "Performs a full-text search across all accessible Notion pages using the provided query. Searches through titles, content, and metadata to find relevant matches.",
		Schema: `{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Search query to find relevant Notion pages. Can include keywords, phrases, or partial matches."
    },
    "maxResults": {
      "type": "number",
      "description": "Maximum number of search results to return. Defaults to 50 if not specified."
    }
  },
  "required": ["query"],
  "additionalProperties": false
}`,
	},
	{
		Name:        SearchPagesTitle,
		Description: "Searches specifically for Notion pages with titles matching the provided query. Useful for finding exact or similar title matches when you know the page name.",
		Schema: `{
  "type": "object",
  "properties": {
    "title": {
      "type": "string",
      "description": "Title text to search for. Can be exact or partial match."
    },
    "maxResults": {
      "type": "number",
      "description": "Maximum number of matching pages to return. Defaults to 10 if not specified."
    }
  },
  "required": ["title"],
  "additionalProperties": false
}`,
	},
	{
		Name:        GetPage,
		Description: "Retrieves comprehensive details of a specific Notion page, including its content, properties, and metadata.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "The unique identifier of the Notion page to retrieve. Must be a valid Notion page ID."
    }
  },
  "required": ["pageId"],
  "additionalProperties": false
}`,
	},
	{
		Name:        GetDatabaseItems,
		Description: "Retrieves items from a specific Notion database.",
		Schema: `{
  "type": "object",
  "properties": {
    "databaseId": {
      "type": "string",
      "description": "The ID of the Notion database to query"
    },
    "maxResults": {
      "type": "number",
      "description": "Maximum number of items to return. Defaults to 10 if not specified."
    }
  },
  "required": ["databaseId"],
  "additionalProperties": false
}`,
	},
	{
		Name:        GetPageProperty,
		Description: "Retrieves a single property item of a Notion page by its property ID.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "The ID of the page the property belongs to"
    },
    "propertyId": {
      "type": "string",
      "description": "The ID of the property to retrieve"
    }
  },
  "required": ["pageId", "propertyId"],
  "additionalProperties": false
}`,
	},
	{
		Name:        GetPageBlocks,
		Description: "Retrieves the content blocks of a Notion page, following pagination until all blocks are fetched.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "The ID of the page whose blocks to retrieve"
    }
  },
  "required": ["pageId"],
  "additionalProperties": false
}`,
	},
	{
		Name:        CreatePage,
		Description: "Creates a new page in Notion within a database or as a subpage.",
		Schema: `{
  "type": "object",
  "properties": {
    "parent": {
      "type": "object",
      "description": "Parent container where the page will be created"
    },
    "properties": {
      "type": "object",
      "description": "Page properties in Notion API format",
      "additionalProperties": true
    },
    "children": {
      "type": "array",
      "description": "Optional page content blocks",
      "items": {
        "type": "object",
        "additionalProperties": true
      }
    }
  },
  "required": ["parent", "properties"],
  "additionalProperties": false
}`,
	},
	{
		Name:        UpdatePage,
		Description: "Updates properties of an existing Notion page.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "ID of the page to update"
    },
    "properties": {
      "type": "object",
      "description": "Updated page properties in Notion API format",
      "additionalProperties": true
    }
  },
  "required": ["pageId", "properties"],
  "additionalProperties": false
}`,
	},
	{
		Name:        DeletePage,
		Description: "Moves a specified Notion page to the trash. The page can be restored from the Notion UI.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "The unique identifier of the Notion page to delete. Must be a valid Notion page ID."
    }
  },
  "required": ["pageId"],
  "additionalProperties": false
}`,
	},
	{
		Name:        CreateComment,
		Description: "Creates a comment on a Notion page.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "ID of the page to comment on"
    },
    "content": {
      "type": "string",
      "description": "Text content of the comment"
    },
    "discussionId": {
      "type": "string",
      "description": "Optional discussion ID for replying to existing comments"
    }
  },
  "required": ["pageId", "content"],
  "additionalProperties": false
}`,
	},
	{
		Name:        GetComments,
		Description: "Retrieves all comments from a Notion page.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "ID of the page to get comments from"
    }
  },
  "required": ["pageId"],
  "additionalProperties": false
}`,
	},
	{
		Name:        CreatePageComplex,
		Description: "Creates a rich, comprehensive Notion page that expands upon basic user inputs. Takes simple instructions and content, then generates a detailed, well-structured page with appropriate sections, formatting, and supplementary content.",
		Schema: `{
  "type": "object",
  "properties": {
    "databaseId": {
      "type": "string",
      "description": "The ID of the database to create the page in"
    },
    "userInstructions": {
      "type": "string",
      "description": "Basic instructions or outline for the page content. These will be expanded into a comprehensive structure with appropriate sections, formatting, and enhanced detail. Can include desired title, key points, or general direction."
    }
  },
  "required": ["databaseId", "userInstructions"],
  "additionalProperties": false
}`,
		Sampling: &SamplingConfig{
			PromptName:  prompts.PageCreatorName,
			MaxTokens:   100000,
			Temperature: 0.7,
		},
	},
	{
		Name:        UpdatePageComplex,
		Description: "Updates an existing Notion page with rich, comprehensive content based on user instructions. Takes simple inputs and transforms them into well-structured, detailed page content while preserving existing information.",
		Schema: `{
  "type": "object",
  "properties": {
    "pageId": {
      "type": "string",
      "description": "The unique identifier of the Notion page to update. Must be a valid Notion page ID."
    },
    "userInstructions": {
      "type": "string",
      "description": "Natural language instructions for updating the page. These will be expanded into comprehensive changes, potentially including new sections, enhanced formatting, additional context, and improved structure while respecting existing content."
    }
  },
  "required": ["pageId", "userInstructions"],
  "additionalProperties": false
}`,
		Sampling: &SamplingConfig{
			PromptName:              prompts.PageEditorName,
			MaxTokens:               100000,
			Temperature:             0.7,
			RequiresExistingContent: true,
		},
	},
}

// Catalog returns the tool descriptors.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}
