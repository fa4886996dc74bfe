package httpapi

import (
	"net/http"
	"time"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

type postingRequest struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date"`
	Deadline    time.Time `json:"deadline"`
	Resume      bool      `json:"resume"`
	CoverLetter bool      `json:"cover_letter"`
	Transcript  bool      `json:"transcript"`
}

type postingUpdateRequest struct {
	Title       *string    `json:"title"`
	Company     *string    `json:"company"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	Deadline    *time.Time `json:"deadline"`
	Resume      *bool      `json:"resume"`
	CoverLetter *bool      `json:"cover_letter"`
	Transcript  *bool      `json:"transcript"`
}

func (r postingUpdateRequest) toUpdate() models.PostingUpdate {
	return models.PostingUpdate{
		Title:       r.Title,
		Company:     r.Company,
		Description: r.Description,
		Location:    r.Location,
		StartDate:   r.StartDate,
		Deadline:    r.Deadline,
		Resume:      r.Resume,
		CoverLetter: r.CoverLetter,
		Transcript:  r.Transcript,
	}
}

func (s *Server) handleJobCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindEmployer)
	if !ok {
		return
	}

	var req postingRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	posting, err := s.postings.Create(r.Context(), ident.ID, &models.JobPosting{
		Title: req.Title, Company: req.Company, Description: req.Description,
		Location: req.Location, StartDate: req.StartDate, Deadline: req.Deadline,
		Resume: req.Resume, CoverLetter: req.CoverLetter, Transcript: req.Transcript,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"data": newPostingView(posting)}))
}

func (s *Server) handleJobList(w http.ResponseWriter, r *http.Request) {
	postings, err := s.postings.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"jobs": newPostingViews(postings)}))
}

func (s *Server) handleJobGet(w http.ResponseWriter, r *http.Request) {
	posting, err := s.postings.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"data": newPostingView(posting)}))
}

func (s *Server) handleJobUpdate(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindEmployer)
	if !ok {
		return
	}

	var req postingUpdateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	posting, err := s.postings.Update(r.Context(), ident.ID, r.PathValue("id"), req.toUpdate())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"job_posting": newPostingView(posting)}))
}

func (s *Server) handleJobDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindEmployer)
	if !ok {
		return
	}

	if err := s.postings.Delete(r.Context(), ident.ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(nil))
}

func (s *Server) handleEmployerJobs(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindEmployer)
	if !ok {
		return
	}

	postings, err := s.postings.ListByAuthor(r.Context(), ident.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"jobs": newPostingViews(postings)}))
}

func (s *Server) handleJobApplications(w http.ResponseWriter, r *http.Request) {
	ident, ok := s.identity(w, r, models.KindEmployer)
	if !ok {
		return
	}

	apps, err := s.postings.ListApplications(r.Context(), ident.ID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, success(envelope{"applications": newApplicationViews(apps)}))
}
