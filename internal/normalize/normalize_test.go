package normalize_test

import (
	"github.com/sleuthling/sleuthling/internal/normalize"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantOK  bool
	}{
		{
			name:   "fenced json block",
			raw:    "Here you go!\n```json\n{\"summary\": \"a muddy footprint\"}\n```\nHope that helps.",
			want:   map[string]any{"summary": "a muddy footprint"},
			wantOK: true,
		},
		{
			name:   "untagged fenced block",
			raw:    "```\n{\"summary\": \"left by a shoe\"}\n```",
			want:   map[string]any{"summary": "left by a shoe"},
			wantOK: true,
		},
		{
			name:   "bare braces inside prose",
			raw:    "The analysis follows. {\"summary\": \"size five\"} That is all.",
			want:   map[string]any{"summary": "size five"},
			wantOK: true,
		},
		{
			name:   "widest brace span wins",
			raw:    "{\"outer\": {\"inner\": true}} trailing",
			want:   map[string]any{"outer": map[string]any{"inner": true}},
			wantOK: true,
		},
		{
			name:   "whole text is json",
			raw:    "{\"trustworthiness\": 70}",
			want:   map[string]any{"trustworthiness": float64(70)},
			wantOK: true,
		},
		{
			name:   "plain prose does not parse",
			raw:    "I could not produce structured output, sorry.",
			wantOK: false,
		},
		{
			name:   "fenced block with broken json does not parse",
			raw:    "```json\n{\"summary\": \n```",
			wantOK: false,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalize.ExtractPayload(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStringAliases(t *testing.T) {
	payload := map[string]any{
		"position_found": "under the desk",
		"location":       "",
		"title":          "Muddy Footprint",
	}

	// First present, non-empty alias wins.
	require.Equal(t, "under the desk", normalize.String(payload, "location", "position_found"))
	require.Equal(t, "Muddy Footprint", normalize.String(payload, "title", "item"))
	require.Equal(t, "", normalize.String(payload, "missing"))
	require.Equal(t, "Untitled Clue", normalize.StringOr(payload, "Untitled Clue", "item"))
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		keys    []string
		want    []string
	}{
		{
			name:    "list of strings",
			payload: map[string]any{"nextSteps": []any{"check the door", "ask Jamie"}},
			keys:    []string{"nextSteps"},
			want:    []string{"check the door", "ask Jamie"},
		},
		{
			name:    "scalar wrapped in list",
			payload: map[string]any{"nextSteps": "check the door"},
			keys:    []string{"nextSteps"},
			want:    []string{"check the door"},
		},
		{
			name:    "non-string elements dropped",
			payload: map[string]any{"nextSteps": []any{"check the door", float64(7)}},
			keys:    []string{"nextSteps"},
			want:    []string{"check the door"},
		},
		{
			name:    "absent key",
			payload: map[string]any{},
			keys:    []string{"nextSteps"},
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalize.StringList(tt.payload, tt.keys...))
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    int
	}{
		{name: "number", payload: map[string]any{"trustworthiness": float64(80)}, want: 80},
		{name: "string digits", payload: map[string]any{"trustworthiness": "150"}, want: 150},
		{name: "string with spaces", payload: map[string]any{"trustworthiness": " 42 "}, want: 42},
		{name: "non-numeric string", payload: map[string]any{"trustworthiness": "abc"}, want: 50},
		{name: "absent", payload: map[string]any{}, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalize.Int(tt.payload, 50, "trustworthiness"))
		})
	}
}

func TestClamp(t *testing.T) {
	require.Equal(t, 100, normalize.Clamp(150, 0, 100))
	require.Equal(t, 0, normalize.Clamp(-3, 0, 100))
	require.Equal(t, 50, normalize.Clamp(50, 0, 100))
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		canonical string
		want      bool
	}{
		{name: "exact", candidate: "Jamie Chen", canonical: "Jamie Chen", want: true},
		{name: "candidate inside canonical", candidate: "Jamie", canonical: "Jamie Chen", want: true},
		{name: "canonical inside candidate", candidate: "suspect Jamie Chen perhaps", canonical: "Jamie Chen", want: true},
		{name: "case insensitive", candidate: "jamie chen", canonical: "Jamie Chen", want: true},
		{name: "different person", candidate: "Ms. Rivera", canonical: "Jamie Chen", want: false},
		{name: "empty candidate", candidate: "", canonical: "Jamie Chen", want: false},
		{name: "empty canonical", candidate: "Jamie", canonical: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalize.NamesMatch(tt.candidate, tt.canonical))
		})
	}
}
