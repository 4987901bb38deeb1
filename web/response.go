/* response.go
 * Contains the helpers every handler uses to read JSON bodies and write JSON responses. Domain errors are mapped to
 * status codes here so the api package never deals with HTTP
 */

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"nfl-playoff-picks/api/apperror"

	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// writeJSON sends data as JSON with the given status code. Headers must be set before the body is written
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// writeError maps err to a status code. Errors that aren't AppErrors are logged and reported as a generic 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status := http.StatusInternalServerError
	errorType := "internal_error"
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status, errorType = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrNotFound):
		status, errorType = http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrConflict):
		status, errorType = http.StatusConflict, "conflict"
	case errors.Is(err, apperror.ErrLocked):
		status, errorType = http.StatusConflict, "locked"
	}

	writeJSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: appErr.Message,
		Field:   appErr.Field,
	})
}

// readJSON decodes a single JSON value from the request body into dst. Malformed bodies become validation errors
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.ValidationFailed("body", "body must not be empty")
		case errors.As(err, &syntaxErr):
			return apperror.ValidationFailed("body", fmt.Sprintf("body contains badly-formed JSON (at character %d)", syntaxErr.Offset))
		case errors.As(err, &typeErr):
			return apperror.ValidationFailed(typeErr.Field, fmt.Sprintf("body contains incorrect JSON type for field %q", typeErr.Field))
		default:
			return apperror.ValidationFailed("body", err.Error())
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperror.ValidationFailed("body", "body must only contain a single JSON value")
	}
	return nil
}
