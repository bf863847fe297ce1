package notion

import (
	"errors"
	"strings"
)

// extractRichText extracts plain text from a rich_text array.
func extractRichText(v any) string {
	arr, ok := v.([]any)
	if !ok {
		return ""
	}
	var text strings.Builder
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			if pt, ok := m["plain_text"].(string); ok {
				text.WriteString(pt)
			}
		}
	}
	return text.String()
}

// extractTitle finds the title property of a page and flattens it.
func extractTitle(properties map[string]any) string {
	for _, v := range properties {
		prop, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if t, _ := prop["type"].(string); t != "title" {
			continue
		}
		if title := extractRichText(prop["title"]); title != "" {
			return title
		}
	}
	return "Untitled"
}

func extractDatabaseTitle(title []any) string {
	if s := extractRichText(title); s != "" {
		return s
	}
	return "Untitled Database"
}

// mapParent converts a raw parent object into the discriminated union.
// A parent must reference a database, a page, or the workspace.
func mapParent(raw map[string]any) (Parent, error) {
	if id, ok := raw["database_id"].(string); ok && id != "" {
		return Parent{Type: "database_id", DatabaseID: id}, nil
	}
	if id, ok := raw["page_id"].(string); ok && id != "" {
		return Parent{Type: "page_id", PageID: id}, nil
	}
	if t, _ := raw["type"].(string); t == "workspace" {
		return Parent{Type: "workspace", Workspace: true}, nil
	}
	return Parent{}, errors.New("Invalid parent type")
}

func mapPage(obj pageObject) (Page, error) {
	parent, err := mapParent(obj.Parent)
	if err != nil {
		return Page{}, err
	}
	return Page{
		ID:             obj.ID,
		Title:          extractTitle(obj.Properties),
		URL:            obj.URL,
		CreatedTime:    obj.CreatedTime,
		LastEditedTime: obj.LastEditedTime,
		Properties:     obj.Properties,
		Parent:         parent,
	}, nil
}

func mapDatabase(obj databaseObject) Database {
	return Database{
		ID:             obj.ID,
		Title:          extractDatabaseTitle(obj.Title),
		URL:            obj.URL,
		CreatedTime:    obj.CreatedTime,
		LastEditedTime: obj.LastEditedTime,
		Properties:     obj.Properties,
	}
}

func mapComment(obj commentObject) Comment {
	var content strings.Builder
	for _, rt := range obj.RichText {
		content.WriteString(rt.PlainText)
	}
	return Comment{
		ID:             obj.ID,
		DiscussionID:   obj.DiscussionID,
		Content:        content.String(),
		CreatedTime:    obj.CreatedTime,
		LastEditedTime: obj.LastEditedTime,
		ParentID:       obj.Parent.CommentID,
	}
}
