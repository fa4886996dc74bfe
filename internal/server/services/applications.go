package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/authz"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/repomanager"
)

// ApplicationService implements job applications: students apply to
// postings, optionally attaching previously uploaded documents.
type ApplicationService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewApplicationService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *ApplicationService {
	return &ApplicationService{db: db, repos: repos, logger: logger.With("module", "applications")}
}

// Apply creates an application by studentID against postingID. Attached
// file ids, when present, must reference documents uploaded by the same
// student; anything else is common.ErrorForbidden.
func (s *ApplicationService) Apply(ctx context.Context, studentID, postingID string, resumeFileID, coverLetterFileID, transcriptFileID string) (*models.JobApplication, error) {
	if _, err := s.repos.Postings(s.db).GetByID(ctx, postingID); err != nil {
		return nil, err
	}

	for _, fileID := range []string{resumeFileID, coverLetterFileID, transcriptFileID} {
		if fileID == "" {
			continue
		}
		file, err := s.repos.UserFiles(s.db).GetByID(ctx, fileID)
		if err != nil {
			return nil, err
		}
		if !authz.CanManageFile(studentID, file) {
			return nil, common.ErrorForbidden
		}
	}

	app := &models.JobApplication{
		ApplicantID:       studentID,
		PostingID:         postingID,
		ResumeFileID:      resumeFileID,
		CoverLetterFileID: coverLetterFileID,
		TranscriptFileID:  transcriptFileID,
	}

	repo := s.repos.Applications(s.db)
	id, err := insertWithFreshID(func(id string) error {
		app.ID = id
		return repo.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	app.ID = id

	s.logger.Info(ctx, "application submitted", "id", app.ID, "posting", postingID)
	return app, nil
}

// Get returns an application visible to the identity: the applicant, the
// employer authoring the targeted posting, or an admin.
func (s *ApplicationService) Get(ctx context.Context, ident *auth.Identity, appID string) (*models.JobApplication, error) {
	app, err := s.repos.Applications(s.db).GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	posting, err := s.repos.Postings(s.db).GetByID(ctx, app.PostingID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if !authz.CanViewApplication(ident.Kind, ident.ID, app, posting) {
		return nil, common.ErrorForbidden
	}

	return app, nil
}

// Delete removes an application created by studentID.
func (s *ApplicationService) Delete(ctx context.Context, studentID, appID string) error {
	repo := s.repos.Applications(s.db)

	app, err := repo.GetByID(ctx, appID)
	if err != nil {
		return err
	}
	if !authz.CanManageApplication(studentID, app) {
		return common.ErrorForbidden
	}

	if err := repo.Delete(ctx, appID); err != nil {
		return err
	}

	s.logger.Info(ctx, "application deleted", "id", appID)
	return nil
}
