package resources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{name: "default block", uri: "resource:///block/default", want: "default"},
		{name: "arbitrary id", uri: "resource:///block/b-42", want: "b-42"},
		{name: "wrong scheme", uri: "notion://block/default", wantErr: true},
		{name: "missing id", uri: "resource:///block/", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBlockURI(tt.uri)
			if tt.wantErr {
				require.EqualError(t, err, "Invalid resource URI format - expected resource:///block/{id}")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadAgent(t *testing.T) {
	data, err := ReadAgent(AgentURI)
	require.NoError(t, err)

	var agent map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &agent))
	assert.Equal(t, AgentName, agent["name"])
	assert.Equal(t, AgentDescription, agent["description"])
	assert.Contains(t, agent["instruction"], "Notion workspace management")
	assert.Equal(t, "Kore", agent["voice"])
}

func TestReadAgentUnknownBlock(t *testing.T) {
	_, err := ReadAgent("resource:///block/other")
	require.EqualError(t, err, "Resource not found")
}

func TestReadAgentBadURI(t *testing.T) {
	_, err := ReadAgent("file:///etc/passwd")
	require.EqualError(t, err, "Invalid resource URI format - expected resource:///block/{id}")
}
