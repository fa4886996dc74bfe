package httpapi

import (
	"net/http"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

func (s *Server) handleJobApply(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindStudent)
	if !ok {
		return
	}

	var req struct {
		Resume      string `json:"resume"`
		CoverLetter string `json:"cover_letter"`
		Transcript  string `json:"transcript"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	app, err := s.applications.Apply(r.Context(), ident.ID, r.PathValue("id"),
		req.Resume, req.CoverLetter, req.Transcript)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"data": newApplicationView(app)}))
}

// handleApplicationGet serves any principal kind: the token is tried as
// student, employer, then admin, and visibility is decided by the service.
func (s *Server) handleApplicationGet(w http.ResponseWriter, r *http.Request) {
	ident, err := s.anyIdentity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.applications.Get(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"data": newApplicationView(app)}))
}

func (s *Server) handleApplicationDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindStudent)
	if !ok {
		return
	}

	if err := s.applications.Delete(r.Context(), ident.ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(nil))
}
