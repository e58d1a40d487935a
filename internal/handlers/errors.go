package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"kidlearn/internal/apperr"
	"kidlearn/internal/logger"
	"kidlearn/internal/validation"
)

type errorBody struct {
	Message string            `json:"message"`
	Code    apperr.Kind       `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondWithError logs err and writes the JSON error envelope.
// Internal causes are logged but never sent to the client.
func respondWithError(w http.ResponseWriter, log *logger.Logger, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	body := errorBody{Message: apperr.PublicMessage(err), Code: kind}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body.Fields = appErr.Fields
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", "status", status, "code", kind, "error", err)
	} else {
		log.Debug("request rejected", "status", status, "code", kind, "error", err)
	}

	respondJSON(w, status, map[string]errorBody{"error": body})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondSuccess(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeJSON reads a JSON request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("Request body is required", nil)
		}
		return apperr.Validation(ErrInvalidJSON, map[string]string{"body": err.Error()})
	}
	return nil
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.Fail(name, ErrInvalidID)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Missing returns 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, validation.Fail(name, fmt.Sprintf("%s (got %q)", ErrInvalidID, raw))
	}
	return v, nil
}
