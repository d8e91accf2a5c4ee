package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "kalaha/internal/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{errs.ErrGameNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: %w", errs.ErrGameNotFound, errs.ErrGameAlreadyStarted), http.StatusNotFound},
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{errs.ErrGameFinished, http.StatusConflict},
		{errs.ErrConflict, http.StatusConflict},
		{fmt.Errorf("%w: %w", errs.ErrInvalidMove, errs.ErrEmptyPit), http.StatusBadRequest},
		{errs.ErrInvalidInput, http.StatusBadRequest},
		{errs.ErrNotTurnPlayer, http.StatusBadRequest},
		{errs.ErrGameNotStarted, http.StatusBadRequest},
		{errs.ErrNoBotPlayer, http.StatusBadRequest},
		{errs.ErrActionFailed, http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusCreated, map[string]string{"gamePin": "G-000001"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Status":201,"Body":{"gamePin":"G-000001"}}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errs.ErrNotTurnPlayer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp Response[ErrorResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, errs.ErrNotTurnPlayer.Error(), resp.Body.ErrorDescription)

	rec = httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("%w: mongo down", errs.ErrActionFailed))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "mongo down")
}
