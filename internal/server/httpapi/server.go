// Package httpapi exposes the backend over HTTP. Handlers decode JSON or
// multipart requests, resolve the caller through the auth layer, call into
// the service layer, and shape results as {status, message, data} bodies.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/services"
)

// Authenticator resolves an Authorization header into an identity of the
// expected principal kind.
type Authenticator interface {
	Authenticate(ctx context.Context, authHeader string, kind models.PrincipalKind) (*auth.Identity, error)
}

// AccountService is the account surface consumed by the HTTP layer.
type AccountService interface {
	RegisterStudent(ctx context.Context, input services.NewStudent) (*models.Student, string, error)
	RegisterEmployer(ctx context.Context, input services.NewEmployer) (*models.Employer, string, error)
	RegisterAdmin(ctx context.Context, input services.NewAdmin) (*models.Admin, string, error)
	Login(ctx context.Context, kind models.PrincipalKind, email, password string) (string, error)
	ApproveEmployer(ctx context.Context, employerID string) error
	DeleteStudent(ctx context.Context, studentID string) error
	ListStudents(ctx context.Context) ([]*models.Student, error)
	ListEmployers(ctx context.Context) ([]*models.Employer, error)
}

// PostingService is the job-posting surface consumed by the HTTP layer.
type PostingService interface {
	Create(ctx context.Context, employerID string, posting *models.JobPosting) (*models.JobPosting, error)
	Get(ctx context.Context, id string) (*models.JobPosting, error)
	ListAll(ctx context.Context) ([]*models.JobPosting, error)
	ListByAuthor(ctx context.Context, employerID string) ([]*models.JobPosting, error)
	Update(ctx context.Context, employerID, postingID string, update models.PostingUpdate) (*models.JobPosting, error)
	Delete(ctx context.Context, employerID, postingID string) error
	ListApplications(ctx context.Context, employerID, postingID string) ([]*models.JobApplication, error)
}

// ApplicationService is the job-application surface consumed by the HTTP layer.
type ApplicationService interface {
	Apply(ctx context.Context, studentID, postingID, resumeFileID, coverLetterFileID, transcriptFileID string) (*models.JobApplication, error)
	Get(ctx context.Context, ident *auth.Identity, appID string) (*models.JobApplication, error)
	Delete(ctx context.Context, studentID, appID string) error
}

// FileService is the document surface consumed by the HTTP layer.
type FileService interface {
	Upload(ctx context.Context, studentID, name, documentType string, data []byte, contentType string) (*models.UserFile, error)
	Fetch(ctx context.Context, ident *auth.Identity, fileID, applicationID string) (*models.UserFile, []byte, error)
	Delete(ctx context.Context, studentID, fileID string) error
	ListByAuthor(ctx context.Context, studentID string) ([]*models.UserFile, error)
}

type Server struct {
	resolver     Authenticator
	accounts     AccountService
	postings     PostingService
	applications ApplicationService
	files        FileService
	logger       logging.Logger
}

func NewServer(resolver Authenticator, accounts AccountService, postings PostingService,
	applications ApplicationService, files FileService, logger logging.Logger) *Server {
	return &Server{
		resolver:     resolver,
		accounts:     accounts,
		postings:     postings,
		applications: applications,
		files:        files,
		logger:       logger.With("module", "httpapi"),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping/", s.handlePing)

	mux.HandleFunc("POST /student/create", s.handleStudentCreate)
	mux.HandleFunc("POST /student/login", s.handleStudentLogin)
	mux.HandleFunc("DELETE /student/delete", s.handleStudentDelete)
	mux.HandleFunc("GET /student/files", s.handleStudentFiles)

	mux.HandleFunc("POST /employer/create", s.handleEmployerCreate)
	mux.HandleFunc("POST /employer/login", s.handleEmployerLogin)
	mux.HandleFunc("GET /employer/jobs", s.handleEmployerJobs)
	mux.HandleFunc("GET /employer/{id}/verify", s.handleEmployerVerify)

	mux.HandleFunc("POST /admin/create", s.handleAdminCreate)
	mux.HandleFunc("POST /admin/login", s.handleAdminLogin)
	mux.HandleFunc("GET /admin/employers", s.handleAdminEmployers)
	mux.HandleFunc("GET /admin/students", s.handleAdminStudents)

	mux.HandleFunc("POST /jobs/create", s.handleJobCreate)
	mux.HandleFunc("GET /jobs/", s.handleJobList)
	mux.HandleFunc("GET /jobs/{id}", s.handleJobGet)
	mux.HandleFunc("PUT /jobs/{id}", s.handleJobUpdate)
	mux.HandleFunc("DELETE /jobs/{id}", s.handleJobDelete)
	mux.HandleFunc("GET /jobs/{id}/applications", s.handleJobApplications)
	mux.HandleFunc("POST /jobs/{id}/apply", s.handleJobApply)

	mux.HandleFunc("GET /application/{id}", s.handleApplicationGet)
	mux.HandleFunc("DELETE /application/{id}", s.handleApplicationDelete)

	mux.HandleFunc("POST /upload", s.handleFileUpload)
	mux.HandleFunc("GET /files/{id}", s.handleFileGet)
	mux.HandleFunc("POST /files/{id}", s.handleFileGetAsEmployer)
	mux.HandleFunc("DELETE /files/{id}", s.handleFileDelete)

	return mux
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong"))
}

// anyIdentity authenticates the request against each principal kind in
// turn. A token only decodes for the kind it was issued with, so at most
// one attempt succeeds.
func (s *Server) anyIdentity(r *http.Request) (*auth.Identity, error) {
	header := r.Header.Get("Authorization")

	var lastErr error
	for _, kind := range []models.PrincipalKind{models.KindStudent, models.KindEmployer, models.KindAdmin} {
		ident, err := s.resolver.Authenticate(r.Context(), header, kind)
		if err == nil {
			return ident, nil
		}
		if !errors.Is(err, common.ErrInvalidToken) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// identity authenticates the request for the given kind, writing the error
// response itself when authentication fails.
func (s *Server) identity(w http.ResponseWriter, r *http.Request, kind models.PrincipalKind) (*auth.Identity, bool) {
	ident, err := s.resolver.Authenticate(r.Context(), r.Header.Get("Authorization"), kind)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return ident, true
}
