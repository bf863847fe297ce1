package prompts

import (
	"fmt"
	"regexp"
	"strings"
)

var variableToken = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Inject replaces every {{variable}} token in text with the value from
// vars. Injection is all-or-nothing: if any referenced variable is
// absent, the text is left untouched and the error names every missing
// variable once.
func Inject(text string, vars map[string]any) (string, error) {
	var missing []string
	seen := make(map[string]bool)
	for _, m := range variableToken.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, ok := vars[name]; !ok && !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("Missing required variables: %s", strings.Join(missing, ", "))
	}

	return variableToken.ReplaceAllStringFunc(text, func(tok string) string {
		name := variableToken.FindStringSubmatch(tok)[1]
		return fmt.Sprint(vars[name])
	}), nil
}

// InjectMessages applies Inject to every message, failing on the first
// message with unresolved variables.
func InjectMessages(messages []Message, vars map[string]any) ([]Message, error) {
	out := make([]Message, len(messages))
	for i, m := range messages {
		text, err := Inject(m.Text, vars)
		if err != nil {
			return nil, err
		}
		m.Text = text
		out[i] = m
	}
	return out, nil
}
