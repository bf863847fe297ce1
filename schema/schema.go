// Package schema compiles JSON Schemas and translates validation
// failures into the adapter's fixed user-facing messages.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// requiredMessages maps a missing property name to its user-facing
// message. Unlisted properties fall back to the generic form.
var requiredMessages = map[string]string{
	"parent":      "Missing required argument: parent",
	"database_id": "Missing required argument: database_id",
	"title":       "Missing required argument: title",
	"pageId":      "Missing required argument: pageId",
	"params":      "Request must have params",
	"messages":    "Request must have at least one message",
	"content":     "Message must have a content object",
	"text":        "Text content must have a string text field",
	"data":        "Image content must have a base64 data field",
	"mimeType":    "Image content must have a mimeType field",
	"type":        "Message content must have a type field",
}

var missingPropRe = regexp.MustCompile(`'([^']+)'`)

// MustCompile parses a draft-07 schema, panicking on malformed input.
// Schemas are static program data, so a failure here is a bug.
func MustCompile(name string, raw []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return compiled
}

// Validate checks a decoded JSON value against a compiled schema. On
// failure it returns a single error whose message joins the translated
// messages of every leaf failure with ", ".
func Validate(compiled *jsonschema.Schema, v any) error {
	err := compiled.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	msgs := collect(ve, nil)
	if len(msgs) == 0 {
		return err
	}
	return errors.New(strings.Join(msgs, ", "))
}

func collect(ve *jsonschema.ValidationError, msgs []string) []string {
	if len(ve.Causes) == 0 {
		return append(msgs, translate(ve)...)
	}
	for _, cause := range ve.Causes {
		msgs = collect(cause, msgs)
	}
	return msgs
}

// translate maps one leaf failure to its fixed message(s). A required
// failure can report several missing properties at once and yields one
// message per property.
func translate(ve *jsonschema.ValidationError) []string {
	keyword := ve.KeywordLocation
	if i := strings.LastIndex(keyword, "/"); i >= 0 {
		keyword = keyword[i+1:]
	}
	loc := ve.InstanceLocation

	switch keyword {
	case "required":
		var msgs []string
		for _, prop := range missingProperties(ve.Message) {
			if msg, ok := requiredMessages[prop]; ok {
				msgs = append(msgs, msg)
			} else {
				msgs = append(msgs, "Missing required argument: "+prop)
			}
		}
		if len(msgs) > 0 {
			return msgs
		}
	case "minimum":
		if loc == "/params/maxTokens" {
			return []string{"maxTokens must be a positive number"}
		}
		if loc == "/params/messages" {
			return []string{"Request must have at least one message"}
		}
	case "maximum":
		if loc == "/params/temperature" {
			return []string{"temperature must be a number between 0 and 1"}
		}
		if strings.Contains(loc, "Priority") {
			return []string{"Model preference priorities must be numbers between 0 and 1"}
		}
	case "enum":
		if loc == "/params/includeContext" {
			return []string{`includeContext must be "none", "thisServer", or "allServers"`}
		}
		if strings.Contains(loc, "/role") {
			return []string{`Message role must be either "user" or "assistant"`}
		}
		if strings.Contains(loc, "/type") {
			return []string{`Content type must be either "text" or "image"`}
		}
	case "pattern":
		if loc == "/pageId" {
			return []string{"Invalid page ID format"}
		}
	case "type":
		if strings.Contains(loc, "/text") {
			return []string{"Text content must have a string text field"}
		}
	case "minItems":
		if loc == "/params/messages" {
			return []string{"Request must have at least one message"}
		}
	}
	return []string{ve.Message}
}

// missingProperties pulls the property names out of a required-keyword
// message, handling both quoted and bare name lists.
func missingProperties(message string) []string {
	if quoted := missingPropRe.FindAllStringSubmatch(message, -1); len(quoted) > 0 {
		props := make([]string, len(quoted))
		for i, m := range quoted {
			props[i] = m[1]
		}
		return props
	}
	const marker = "missing properties: "
	i := strings.Index(message, marker)
	if i < 0 {
		return nil
	}
	var props []string
	for _, p := range strings.Split(message[i+len(marker):], ",") {
		if p = strings.TrimSpace(p); p != "" {
			props = append(props, p)
		}
	}
	return props
}
