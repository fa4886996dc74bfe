package services

import (
	"context"
	"database/sql"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/authz"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/repomanager"
)

// PostingService implements job posting CRUD. Every mutation and the
// applications listing are gated by authz.CanManagePosting.
type PostingService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewPostingService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *PostingService {
	return &PostingService{db: db, repos: repos, logger: logger.With("module", "postings")}
}

// Create persists a new posting authored by employerID, drawing a random
// id with the bounded collision-retry loop.
func (s *PostingService) Create(ctx context.Context, employerID string, posting *models.JobPosting) (*models.JobPosting, error) {
	if posting.Title == "" || posting.Company == "" || posting.Description == "" || posting.Location == "" {
		return nil, common.ErrorValidation
	}
	if posting.StartDate.IsZero() || posting.Deadline.IsZero() {
		return nil, common.ErrorValidation
	}

	posting.AuthorID = employerID

	repo := s.repos.Postings(s.db)
	id, err := insertWithFreshID(func(id string) error {
		posting.ID = id
		return repo.Create(ctx, posting)
	})
	if err != nil {
		return nil, err
	}
	posting.ID = id

	s.logger.Info(ctx, "posting created", "id", posting.ID, "author", employerID)
	return posting, nil
}

func (s *PostingService) Get(ctx context.Context, id string) (*models.JobPosting, error) {
	return s.repos.Postings(s.db).GetByID(ctx, id)
}

func (s *PostingService) ListAll(ctx context.Context) ([]*models.JobPosting, error) {
	return s.repos.Postings(s.db).ListAll(ctx)
}

func (s *PostingService) ListByAuthor(ctx context.Context, employerID string) ([]*models.JobPosting, error) {
	return s.repos.Postings(s.db).ListByAuthor(ctx, employerID)
}

// Update applies an allow-listed update to a posting owned by employerID.
func (s *PostingService) Update(ctx context.Context, employerID, postingID string, update models.PostingUpdate) (*models.JobPosting, error) {
	repo := s.repos.Postings(s.db)

	posting, err := repo.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManagePosting(employerID, posting) {
		return nil, common.ErrorForbidden
	}

	if err := repo.Update(ctx, postingID, update); err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, postingID)
}

// Delete removes a posting owned by employerID.
func (s *PostingService) Delete(ctx context.Context, employerID, postingID string) error {
	repo := s.repos.Postings(s.db)

	posting, err := repo.GetByID(ctx, postingID)
	if err != nil {
		return err
	}
	if !authz.CanManagePosting(employerID, posting) {
		return common.ErrorForbidden
	}

	if err := repo.Delete(ctx, postingID); err != nil {
		return err
	}

	s.logger.Info(ctx, "posting deleted", "id", postingID, "author", employerID)
	return nil
}

// ListApplications returns the applications submitted to a posting, visible
// only to the employer who authored it.
func (s *PostingService) ListApplications(ctx context.Context, employerID, postingID string) ([]*models.JobApplication, error) {
	posting, err := s.repos.Postings(s.db).GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManagePosting(employerID, posting) {
		return nil, common.ErrorForbidden
	}

	return s.repos.Applications(s.db).ListByPosting(ctx, postingID)
}
