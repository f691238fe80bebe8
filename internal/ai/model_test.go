package ai

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestValidateModel(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		wantErr bool
	}{
		{name: "known model", model: "gpt-4o", wantErr: false},
		{name: "known mini model", model: "gpt-4o-mini", wantErr: false},
		{name: "known dated variant", model: "gpt-4-turbo-2024-04-09", wantErr: false},
		{name: "newer model with known prefix", model: "gpt-4o-2025-07-01", wantErr: false},
		{name: "empty", model: "", wantErr: true},
		{name: "nonexistent gpt-5", model: "gpt-5", wantErr: true},
		{name: "nonexistent gpt-5 variant", model: "gpt-5-turbo", wantErr: true},
		{name: "dotted typo", model: "gpt-4.1", wantErr: true},
		{name: "unknown vendor model", model: "claude-3-opus", wantErr: true},
		{name: "garbage", model: "my-cool-model", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModel(tt.model)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidModel)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	lookupEnv := func(string) (string, bool) { return "", false }
	_, err := NewClient(lookupEnv, discardLogger())
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClientRejectsBadModel(t *testing.T) {
	lookupEnv := func(key string) (string, bool) {
		switch key {
		case "OPENAI_API_KEY":
			return "sk-test", true
		case "OPENAI_MODEL":
			return "gpt-5", true
		default:
			return "", false
		}
	}
	_, err := NewClient(lookupEnv, discardLogger())
	require.ErrorIs(t, err, ErrInvalidModel)
}
