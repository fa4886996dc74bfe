package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
)

type envelope map[string]any

func success(extra envelope) envelope {
	body := envelope{"status": "success"}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func fail(message string) envelope {
	return envelope{"status": "error", "message": message}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here only means a
	// broken connection.
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a service error to one canonical HTTP response per error
// kind. Recoverable account outcomes (duplicate email, unapproved employer)
// keep their 200-with-error-body shape.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrMissingToken):
		s.writeJSON(w, http.StatusUnauthorized, fail("missing auth token"))
	case errors.Is(err, common.ErrTokenExpired):
		s.writeJSON(w, http.StatusUnauthorized, fail("auth token expired"))
	case errors.Is(err, common.ErrInvalidToken):
		s.writeJSON(w, http.StatusUnauthorized, fail("invalid auth token"))
	case errors.Is(err, common.ErrUnknownPrincipal):
		s.writeJSON(w, http.StatusUnauthorized, fail("unknown account"))
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, fail("invalid credentials"))
	case errors.Is(err, common.ErrorForbidden):
		s.writeJSON(w, http.StatusForbidden, fail("access denied"))
	case errors.Is(err, common.ErrorNotFound):
		s.writeJSON(w, http.StatusNotFound, fail("not found"))
	case errors.Is(err, common.ErrorValidation):
		s.writeJSON(w, http.StatusBadRequest, fail("invalid request"))
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeJSON(w, http.StatusOK, fail("User already exists"))
	case errors.Is(err, common.ErrorNotApproved):
		s.writeJSON(w, http.StatusOK, fail("account is not approved"))
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		s.writeJSON(w, http.StatusInternalServerError, fail("internal error"))
	}
}

// decodeJSON reads the request body into dst, reporting malformed input as
// a validation error.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, fail("invalid request"))
		return false
	}
	return true
}
