package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/runnerr0/arcade/internal/player"
	"github.com/runnerr0/arcade/internal/prefs"
)

// apiError is the body of every non-2xx response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, apiError{Code: code, Message: message})
}

// writeErr maps a domain error to its status code.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, prefs.ErrInvalidRating), errors.Is(err, prefs.ErrInvalidTheme):
		s.writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, player.ErrGameNotFound), errors.Is(err, player.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, player.ErrRatingLocked):
		s.writeError(w, http.StatusConflict, "rating_locked", err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (s *Server) notFound(w http.ResponseWriter, what string) {
	s.writeError(w, http.StatusNotFound, "not_found", what+" not found")
}

// decodeBody reads a JSON body into v and validates its tags.
func (s *Server) decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}
