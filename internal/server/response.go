package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/storage"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errValidation marks a request the client must fix.
var errValidation = errors.New("validation failed")

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return errValidation }

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already sent
			s.logger.Error("failed to encode JSON response", logger.Error(err))
		}
	}
}

// writeError maps storage and validation errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: reqErr.msg})
	case errors.Is(err, storage.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, storage.ErrConflict):
		s.writeJSON(w, http.StatusConflict, ErrorResponse{Error: "conflict", Message: err.Error()})
	default:
		s.logger.Error("request failed", logger.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
