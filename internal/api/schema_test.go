package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type schemaFixture struct {
	Reasoning string `json:"reasoning" jsonschema_description:"why this command"`
	Command   string `json:"command" jsonschema_description:"the shell command"`
}

func TestSchemaFor(t *testing.T) {
	s := SchemaFor(&schemaFixture{})

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"reasoning", "command"}, s.Required)
	assert.Empty(t, s.Version)
	assert.Empty(t, string(s.ID))

	require.NotNil(t, s.Properties)
	var keys []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"reasoning", "command"}, keys)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$schema")
	assert.NotContains(t, string(raw), "$ref")
	assert.Contains(t, string(raw), `"additionalProperties":false`)
}

func TestToGeminiSchema(t *testing.T) {
	got := toGeminiSchema(SchemaFor(&schemaFixture{}))

	want := &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"reasoning", "command"},
		Properties: map[string]*genai.Schema{
			"reasoning": {Type: genai.TypeString, Description: "why this command"},
			"command":   {Type: genai.TypeString, Description: "the shell command"},
		},
		PropertyOrdering: []string{"reasoning", "command"},
	}

	assert.Equal(t, want, got)
}

func TestToGeminiSchema_Nil(t *testing.T) {
	assert.Nil(t, toGeminiSchema(nil))
}

func TestGeminiType(t *testing.T) {
	tests := []struct {
		in   string
		want genai.Type
	}{
		{"object", genai.TypeObject},
		{"array", genai.TypeArray},
		{"integer", genai.TypeInteger},
		{"number", genai.TypeNumber},
		{"boolean", genai.TypeBoolean},
		{"string", genai.TypeString},
		{"null", genai.TypeUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := geminiType(tt.in); got != tt.want {
				t.Errorf("geminiType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
