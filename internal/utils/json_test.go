package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "kalaha/internal/errors"
)

type payload struct {
	PlayerName string `json:"playerName"`
}

func TestDecodeJSONRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"playerName":"Alice"}`, false},
		{"unknown field", `{"playerName":"Alice","admin":true}`, true},
		{"malformed", `{"playerName":`, true},
		{"empty", ``, true},
		{"trailing object", `{"playerName":"Alice"}{"playerName":"Bob"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/games", strings.NewReader(tt.body))
			var dst payload

			err := DecodeJSONRequest(httptest.NewRecorder(), req, &dst)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Alice", dst.PlayerName)
		})
	}
}
