package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	errs "kalaha/internal/errors"
)

const maxBodyBytes = 1 << 16

// DecodeJSONRequest decodes exactly one JSON object from the request body
// into dst. Unknown fields and trailing data are rejected with
// errs.ErrInvalidInput.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", errs.ErrInvalidInput, err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", errs.ErrInvalidInput)
	}
	return nil
}
