package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tfield/travel-planner/internal/domain"
)

// errorResponse is the envelope every error body uses.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// and abandoned; by then the status line is already on the wire.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// writeError writes the error envelope with the given status and code.
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// notFound writes a 404 envelope. The caller supplies the human-readable
// message (e.g. "plan not found") because the handler is the layer that
// knows what was being looked up.
func (s *Server) notFound(w http.ResponseWriter, message string) {
	s.writeError(w, http.StatusNotFound, "not_found", message)
}

// unprocessable writes a 422 envelope for a request rejected before or by
// the service layer (malformed body, domain validation failure).
func (s *Server) unprocessable(w http.ResponseWriter, message string) {
	s.writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// serviceError maps a service-layer error onto the wire: domain.ErrNotFound
// becomes 404, domain.ErrValidation becomes 422, anything else is a logged
// 500 with an opaque body.
func (s *Server) serviceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.notFound(w, notFoundMessage)
	case errors.Is(err, domain.ErrValidation):
		s.unprocessable(w, unwrapMessage(err))
	default:
		s.log.Error("handler: unexpected service error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "validation error: city is required" yields "city is required".
// It walks the unwrap chain for the layer whose message starts with the
// sentinel, so user-supplied text echoed in the message can never be mistaken
// for the prefix.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	prefix := domain.ErrValidation.Error() + ": "
	for e := err; e != nil; e = errors.Unwrap(e) {
		if msg := e.Error(); strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return err.Error()
}
