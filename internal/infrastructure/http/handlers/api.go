// Package handlers provides the JSON HTTP handlers for the API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/vothanhthong/yummyai/pkg/errors"
)

var validate = validator.New()

// writeJSON writes a JSON response body with status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps an error to its HTTP status and a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.StatusOf(err), map[string]string{
		"code":  string(apperrors.CodeOf(err)),
		"error": userMessage(err),
	})
}

func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

// decodeBody decodes and validates a JSON request body.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.New(apperrors.CodeBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.Wrap(err, apperrors.CodeValidationFailed, "invalid request")
	}
	return nil
}
