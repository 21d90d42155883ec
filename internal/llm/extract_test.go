package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "fenced json block",
			input: "Here is the report:\n```json\n{\"summary\": \"ok\"}\n```\nDone.",
			want:  `{"summary": "ok"}`,
		},
		{
			name:  "fenced block without language tag",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "whole body is json",
			input: "  {\"summary\": \"ok\", \"confidence\": 0.5}  ",
			want:  `{"summary": "ok", "confidence": 0.5}`,
		},
		{
			name:  "brace window with prose around",
			input: "Sure! {\"summary\": \"ok\"} hope that helps",
			want:  `{"summary": "ok"}`,
		},
		{
			name:    "empty body",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "no json at all",
			input:   "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "broken brace window",
			input:   "prefix {not json} suffix",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONObject_Retraction(t *testing.T) {
	// Для строки, уже содержащей ровно один JSON-объект,
	// extract(x) == x с точностью до внешних пробелов.
	input := `{"summary": "## 1. x ## 6. y", "highlights": ["a"], "confidence": 0.8}`

	got, err := ExtractJSONObject("  " + input + "\n")
	require.NoError(t, err)
	assert.Equal(t, input, got)

	again, err := ExtractJSONObject(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestParseEnvelope(t *testing.T) {
	envelope, err := parseEnvelope(`{"summary": "s", "highlights": ["h1"], "confidence": 0.9}`)
	require.NoError(t, err)
	assert.Equal(t, "s", envelope.Summary)
	assert.Equal(t, []string{"h1"}, envelope.Highlights)
	assert.Equal(t, 0.9, *envelope.Confidence)
}

func TestParseEnvelope_Defaults(t *testing.T) {
	envelope, err := parseEnvelope(`{"summary": "s"}`)
	require.NoError(t, err)
	assert.Equal(t, 0.5, *envelope.Confidence)
	assert.Empty(t, envelope.Highlights)
}

func TestParseEnvelope_ClampsConfidence(t *testing.T) {
	envelope, err := parseEnvelope(`{"summary": "s", "confidence": 7.5}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *envelope.Confidence)

	envelope, err = parseEnvelope(`{"summary": "s", "confidence": -3}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *envelope.Confidence)
}

func TestParseEnvelope_Rejects(t *testing.T) {
	_, err := parseEnvelope(`{"summary": ""}`)
	assert.Error(t, err)

	_, err = parseEnvelope(`{"summary": 42}`)
	assert.Error(t, err)
}
