package httpapi

import (
	"io"
	"net/http"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

// maxUploadBytes bounds the multipart form kept in memory per upload.
const maxUploadBytes = 16 << 20

func (s *Server) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindStudent)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeJSON(w, http.StatusBadRequest, fail("invalid request"))
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, fail("invalid request"))
		return
	}
	defer part.Close()

	data, err := io.ReadAll(io.LimitReader(part, maxUploadBytes))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, fail("invalid request"))
		return
	}

	name := r.FormValue("file_name")
	if name == "" {
		name = header.Filename
	}

	file, err := s.files.Upload(r.Context(), ident.ID, name, r.FormValue("file_type"),
		data, header.Header.Get("Content-Type"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"data": newFileView(file)}))
}

func (s *Server) handleFileGet(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindStudent)
	if !ok {
		return
	}

	s.serveFile(w, r, ident, r.PathValue("id"), "")
}

// handleFileGetAsEmployer serves a document to the employer whose posting
// received the application referencing it.
func (s *Server) handleFileGetAsEmployer(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindEmployer)
	if !ok {
		return
	}

	var req struct {
		ApplicationID string `json:"application_id"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	s.serveFile(w, r, ident, r.PathValue("id"), req.ApplicationID)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, ident *auth.Identity, fileID, applicationID string) {
	_, data, err := s.files.Fetch(r.Context(), ident, fileID, applicationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(data)
}

func (s *Server) handleFileDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindStudent)
	if !ok {
		return
	}

	if err := s.files.Delete(r.Context(), ident.ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(nil))
}

func (s *Server) handleStudentFiles(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindStudent)
	if !ok {
		return
	}

	files, err := s.files.ListByAuthor(r.Context(), ident.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"files": newFileViews(files)}))
}
