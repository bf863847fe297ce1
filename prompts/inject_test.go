package prompts

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInject(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		vars    map[string]any
		want    string
		wantErr string
	}{
		{
			name: "replaces all occurrences",
			text: "page {{pageId}} and again {{pageId}}",
			vars: map[string]any{"pageId": "p-1"},
			want: "page p-1 and again p-1",
		},
		{
			name: "no tokens",
			text: "plain text",
			vars: nil,
			want: "plain text",
		},
		{
			name: "non-string values",
			text: "limit={{max}}",
			vars: map[string]any{"max": 50},
			want: "limit=50",
		},
		{
			name:    "missing variable",
			text:    "{{databaseId}}",
			vars:    map[string]any{},
			wantErr: "Missing required variables: databaseId",
		},
		{
			name:    "missing variables listed once each",
			text:    "{{a}} {{b}} {{a}}",
			vars:    map[string]any{},
			wantErr: "Missing required variables: a, b",
		},
		{
			name:    "partial variables still fail",
			text:    "{{a}} {{b}}",
			vars:    map[string]any{"a": "x"},
			wantErr: "Missing required variables: b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inject(tt.text, tt.vars)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInjectMessages(t *testing.T) {
	messages := []Message{
		{Role: "assistant", Text: "instructions"},
		{Role: "user", Text: "<pageId>{{pageId}}</pageId>"},
	}

	injected, err := InjectMessages(messages, map[string]any{"pageId": "p-1"})
	require.NoError(t, err)
	assert.Equal(t, "instructions", injected[0].Text)
	assert.Equal(t, "<pageId>p-1</pageId>", injected[1].Text)

	// Originals untouched.
	assert.Equal(t, "<pageId>{{pageId}}</pageId>", messages[1].Text)

	_, err = InjectMessages(messages, map[string]any{})
	require.EqualError(t, err, "Missing required variables: pageId")
}

// Injection is total: with every referenced variable bound, the result
// contains no tokens; with any unbound, the call fails.
func TestInjectProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	ident := gen.RegexMatch(`[a-zA-Z][a-zA-Z0-9]{0,8}`)

	properties.Property("bound variables always resolve", prop.ForAll(
		func(names []string, value string) bool {
			var b strings.Builder
			vars := make(map[string]any, len(names))
			for _, n := range names {
				b.WriteString("{{" + n + "}} ")
				vars[n] = value
			}
			out, err := Inject(b.String(), vars)
			return err == nil && !strings.Contains(out, "{{")
		},
		gen.SliceOf(ident),
		gen.AlphaString(),
	))

	properties.Property("unbound variables always fail", prop.ForAll(
		func(name string) bool {
			_, err := Inject("{{"+name+"}}", map[string]any{})
			return err != nil && strings.HasPrefix(err.Error(), "Missing required variables: ")
		},
		ident,
	))

	properties.TestingRun(t)
}
