package services

import (
	"context"
	"database/sql"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/authz"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/blob"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/repomanager"
)

// FileService implements user document storage: metadata rows in Postgres,
// bytes in the blob store.
type FileService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	blobs  blob.Store
	logger logging.Logger
}

func NewFileService(db *sql.DB, repos repomanager.RepositoryManager, blobs blob.Store, logger logging.Logger) *FileService {
	return &FileService{db: db, repos: repos, blobs: blobs, logger: logger.With("module", "files")}
}

// Upload stores the document bytes and records the metadata row. When the
// row insert fails after the blob was written, the blob is removed again on
// a best-effort basis.
func (s *FileService) Upload(ctx context.Context, studentID, name, documentType string, data []byte, contentType string) (*models.UserFile, error) {
	if name == "" || len(data) == 0 || !models.ValidDocumentType(documentType) {
		return nil, common.ErrorValidation
	}

	key := blob.RandomStorageKey()
	if err := s.blobs.Put(ctx, key, data, contentType); err != nil {
		return nil, common.ErrorInternal
	}

	file := &models.UserFile{
		AuthorID:     studentID,
		Name:         name,
		DocumentType: documentType,
		StorageKey:   key,
	}

	repo := s.repos.UserFiles(s.db)
	id, err := insertWithFreshID(func(id string) error {
		file.ID = id
		return repo.Create(ctx, file)
	})
	if err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn(ctx, "orphaned blob after failed upload", "key", key)
		}
		return nil, err
	}
	file.ID = id

	s.logger.Info(ctx, "file uploaded", "id", file.ID, "type", documentType)
	return file, nil
}

// Fetch returns the file metadata and bytes for the owning student, or for
// an employer through an application to one of their postings that was
// submitted by the file's author.
func (s *FileService) Fetch(ctx context.Context, ident *auth.Identity, fileID, applicationID string) (*models.UserFile, []byte, error) {
	file, err := s.repos.UserFiles(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	switch ident.Kind {
	case models.KindStudent:
		if !authz.CanManageFile(ident.ID, file) {
			return nil, nil, common.ErrorForbidden
		}
	case models.KindEmployer:
		if applicationID == "" {
			return nil, nil, common.ErrorForbidden
		}
		app, err := s.repos.Applications(s.db).GetByID(ctx, applicationID)
		if err != nil {
			return nil, nil, err
		}
		posting, err := s.repos.Postings(s.db).GetByID(ctx, app.PostingID)
		if err != nil {
			return nil, nil, err
		}
		if !authz.CanViewApplication(ident.Kind, ident.ID, app, posting) || app.ApplicantID != file.AuthorID {
			return nil, nil, common.ErrorForbidden
		}
	default:
		return nil, nil, common.ErrorForbidden
	}

	data, err := s.blobs.Get(ctx, file.StorageKey)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return file, data, nil
}

// Delete removes a file owned by studentID: the metadata row first, then
// the blob.
func (s *FileService) Delete(ctx context.Context, studentID, fileID string) error {
	repo := s.repos.UserFiles(s.db)

	file, err := repo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if !authz.CanManageFile(studentID, file) {
		return common.ErrorForbidden
	}

	if err := repo.Delete(ctx, fileID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, file.StorageKey); err != nil {
		s.logger.Warn(ctx, "orphaned blob after file deletion", "key", file.StorageKey)
	}

	s.logger.Info(ctx, "file deleted", "id", fileID)
	return nil
}

// ListByAuthor returns the metadata of every document uploaded by the student.
func (s *FileService) ListByAuthor(ctx context.Context, studentID string) ([]*models.UserFile, error) {
	return s.repos.UserFiles(s.db).ListByAuthor(ctx, studentID)
}
