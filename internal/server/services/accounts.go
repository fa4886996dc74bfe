// Package services contains the server-side business logic. This file
// implements AccountService: registration, login, employer approval, and
// account deletion for the three principal kinds.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/dbx"
	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/authz"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/blob"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/password"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/repomanager"
)

// NewStudent carries validated registration input for a student account.
type NewStudent struct {
	Name          string
	Email         string
	Password      string
	ClassStanding string
}

// NewEmployer carries validated registration input for an employer account.
// Employers start unapproved and cannot log in until an admin approves them.
type NewEmployer struct {
	Name               string
	Email              string
	Password           string
	Company            string
	CompanyDescription string
}

// NewAdmin carries validated registration input for an admin account.
type NewAdmin struct {
	Name     string
	Email    string
	Password string
	Position string
}

// AccountService implements the account lifecycle. It also implements
// auth.PrincipalSource so the identity resolver can load principals.
type AccountService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher *password.Hasher
	codec  *auth.Codec
	blobs  blob.Store
	logger logging.Logger
}

func NewAccountService(db *sql.DB, repos repomanager.RepositoryManager, hasher *password.Hasher, codec *auth.Codec, blobs blob.Store, logger logging.Logger) *AccountService {
	return &AccountService{
		db:     db,
		repos:  repos,
		hasher: hasher,
		codec:  codec,
		blobs:  blobs,
		logger: logger.With("module", "accounts"),
	}
}

// RegisterStudent creates a student account and issues an auth token.
// A duplicate email yields common.ErrorAlreadyExists without touching the
// existing account.
func (s *AccountService) RegisterStudent(ctx context.Context, input NewStudent) (*models.Student, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.ClassStanding == "" {
		return nil, "", common.ErrorValidation
	}
	email := normalizeEmail(input.Email)

	repo := s.repos.Students(s.db)

	if err := s.checkEmailFree(ctx, models.KindStudent, email); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	student := &models.Student{
		Name:          input.Name,
		Email:         email,
		PasswordHash:  hash,
		ClassStanding: input.ClassStanding,
	}

	id, err := insertWithFreshID(func(id string) error {
		student.ID = id
		return repo.Create(ctx, student)
	})
	if err != nil {
		return nil, "", err
	}
	student.ID = id

	token, err := s.codec.Encode(student.ID, models.KindStudent, time.Now())
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	s.logger.Info(ctx, "student registered", "id", student.ID)
	return student, token, nil
}

// RegisterEmployer creates an unapproved employer account. A token is
// issued, but the account cannot log in again until approved.
func (s *AccountService) RegisterEmployer(ctx context.Context, input NewEmployer) (*models.Employer, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Company == "" {
		return nil, "", common.ErrorValidation
	}
	email := normalizeEmail(input.Email)

	repo := s.repos.Employers(s.db)

	if err := s.checkEmailFree(ctx, models.KindEmployer, email); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	employer := &models.Employer{
		Name:               input.Name,
		Email:              email,
		PasswordHash:       hash,
		Company:            input.Company,
		CompanyDescription: input.CompanyDescription,
		IsApproved:         false,
	}

	id, err := insertWithFreshID(func(id string) error {
		employer.ID = id
		return repo.Create(ctx, employer)
	})
	if err != nil {
		return nil, "", err
	}
	employer.ID = id

	token, err := s.codec.Encode(employer.ID, models.KindEmployer, time.Now())
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	s.logger.Info(ctx, "employer registered", "id", employer.ID, "company", employer.Company)
	return employer, token, nil
}

// RegisterAdmin creates an admin account and issues an auth token.
func (s *AccountService) RegisterAdmin(ctx context.Context, input NewAdmin) (*models.Admin, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, "", common.ErrorValidation
	}
	email := normalizeEmail(input.Email)

	repo := s.repos.Admins(s.db)

	if err := s.checkEmailFree(ctx, models.KindAdmin, email); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	admin := &models.Admin{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Position:     input.Position,
	}

	id, err := insertWithFreshID(func(id string) error {
		admin.ID = id
		return repo.Create(ctx, admin)
	})
	if err != nil {
		return nil, "", err
	}
	admin.ID = id

	token, err := s.codec.Encode(admin.ID, models.KindAdmin, time.Now())
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	s.logger.Info(ctx, "admin registered", "id", admin.ID)
	return admin, token, nil
}

// Login verifies the credentials of a principal of the given kind and
// issues a token. Unknown email and wrong password are both
// common.ErrorUnauthorized; an unapproved employer with correct credentials
// is common.ErrorNotApproved with no token issued. Legacy password hashes
// are upgraded in place after a successful verification.
func (s *AccountService) Login(ctx context.Context, kind models.PrincipalKind, email, plaintext string) (string, error) {
	email = normalizeEmail(email)

	principal, employer, err := s.principalByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(plaintext, principal.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	if kind == models.KindEmployer && !authz.CanLogin(employer) {
		return "", common.ErrorNotApproved
	}

	if s.hasher.NeedsRehash(principal.PasswordHash) {
		s.upgradeHash(ctx, kind, principal.ID, plaintext)
	}

	token, err := s.codec.Encode(principal.ID, kind, time.Now())
	if err != nil {
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "login", "kind", string(kind), "id", principal.ID)
	return token, nil
}

// ApproveEmployer flips the employer to its terminal Approved state.
// Admin-kind enforcement happens at the call site (the transport resolves
// the acting principal as an admin before invoking this).
func (s *AccountService) ApproveEmployer(ctx context.Context, employerID string) error {
	if err := s.repos.Employers(s.db).SetApproved(ctx, employerID); err != nil {
		return err
	}
	s.logger.Info(ctx, "employer approved", "id", employerID)
	return nil
}

// DeleteStudent removes the student and, in the same transaction, every
// application and file row the student owns. Blobs are deleted after the
// transaction commits; a failed blob delete is logged, not surfaced.
func (s *AccountService) DeleteStudent(ctx context.Context, studentID string) error {
	files, err := s.repos.UserFiles(s.db).ListByAuthor(ctx, studentID)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Applications(tx).DeleteByApplicant(ctx, studentID); err != nil {
			return err
		}
		if err := s.repos.UserFiles(tx).DeleteByAuthor(ctx, studentID); err != nil {
			return err
		}
		return s.repos.Students(tx).Delete(ctx, studentID)
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
			s.logger.Warn(ctx, "orphaned blob after account deletion", "key", f.StorageKey, "error", err.Error())
		}
	}

	s.logger.Info(ctx, "student deleted", "id", studentID)
	return nil
}

// ListStudents returns all student accounts (admin listing).
func (s *AccountService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.repos.Students(s.db).List(ctx)
}

// ListEmployers returns all employer accounts (admin listing).
func (s *AccountService) ListEmployers(ctx context.Context) ([]*models.Employer, error) {
	return s.repos.Employers(s.db).List(ctx)
}

// FindPrincipal implements auth.PrincipalSource: it loads a principal by id
// from the store matching kind.
func (s *AccountService) FindPrincipal(ctx context.Context, kind models.PrincipalKind, id string) (*models.Principal, error) {
	switch kind {
	case models.KindStudent:
		student, err := s.repos.Students(s.db).GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return student.Principal(), nil
	case models.KindEmployer:
		employer, err := s.repos.Employers(s.db).GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return employer.Principal(), nil
	case models.KindAdmin:
		admin, err := s.repos.Admins(s.db).GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return admin.Principal(), nil
	}
	return nil, common.ErrorNotFound
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkEmailFree performs the pre-insert uniqueness read. The unique
// constraint in the insert path remains the last line of defense against
// concurrent registration with the same email.
func (s *AccountService) checkEmailFree(ctx context.Context, kind models.PrincipalKind, email string) error {
	_, _, err := s.principalByEmail(ctx, kind, email)
	if err == nil {
		return common.ErrorAlreadyExists
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return common.ErrorInternal
}

// principalByEmail loads the principal projection for kind/email. For
// employers the full record is returned as well, for the approval gate.
func (s *AccountService) principalByEmail(ctx context.Context, kind models.PrincipalKind, email string) (*models.Principal, *models.Employer, error) {
	switch kind {
	case models.KindStudent:
		student, err := s.repos.Students(s.db).GetByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		return student.Principal(), nil, nil
	case models.KindEmployer:
		employer, err := s.repos.Employers(s.db).GetByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		return employer.Principal(), employer, nil
	case models.KindAdmin:
		admin, err := s.repos.Admins(s.db).GetByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		return admin.Principal(), nil, nil
	}
	return nil, nil, common.ErrorNotFound
}

// upgradeHash re-derives a legacy hash with the current scheme. Best effort:
// a failure leaves the old hash in place and only logs.
func (s *AccountService) upgradeHash(ctx context.Context, kind models.PrincipalKind, id, plaintext string) {
	newHash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.logger.Warn(ctx, "hash upgrade failed", "kind", string(kind), "id", id)
		return
	}

	switch kind {
	case models.KindStudent:
		err = s.repos.Students(s.db).UpdatePasswordHash(ctx, id, newHash)
	case models.KindEmployer:
		err = s.repos.Employers(s.db).UpdatePasswordHash(ctx, id, newHash)
	case models.KindAdmin:
		err = s.repos.Admins(s.db).UpdatePasswordHash(ctx, id, newHash)
	}
	if err != nil {
		s.logger.Warn(ctx, "hash upgrade failed", "kind", string(kind), "id", id)
	}
}
