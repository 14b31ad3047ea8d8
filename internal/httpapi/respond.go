// ABOUTME: JSON response helpers and the error-to-status mapping
// ABOUTME: Storage failures surface as generic 500s with no internal detail

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/collab"
	"github.com/taskdeck/taskdeck/internal/policy"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// validationErrs are rejected with a field-identifying 400 message.
var validationErrs = []error{
	task.ErrEmptyTitle,
	task.ErrInvalidPriority,
	task.ErrInvalidStatus,
	task.ErrInvalidDueDate,
	collab.ErrEmptyContent,
	collab.ErrEmptyAction,
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the body for successful deletes.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps a service error to an HTTP status. Not-found stays
// distinct from forbidden, matching the original board. Anything
// unrecognized is a storage-layer failure: logged with detail, returned
// without any.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, policy.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, store.ErrTagExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "tag already exists"})
	case isValidationErr(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func isValidationErr(err error) bool {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
