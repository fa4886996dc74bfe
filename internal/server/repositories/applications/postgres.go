package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/dbx"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, app *models.JobApplication) error {
	query :=
		`INSERT INTO job_applications
		   (id, applicant_id, posting_id, resume_file_id, cover_letter_file_id, transcript_file_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.ApplicantID, app.PostingID,
		nullString(app.ResumeFileID), nullString(app.CoverLetterFileID), nullString(app.TranscriptFileID))

	if err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.JobApplication, error) {
	query := selectColumns + ` WHERE id = $1`

	app := &models.JobApplication{}
	if err := r.scanRow(r.db.QueryRowContext(ctx, query, id).Scan, app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return app, nil
}

func (r *PostgresRepository) ListByPosting(ctx context.Context, postingID string) ([]*models.JobApplication, error) {
	return r.list(ctx, selectColumns+` WHERE posting_id = $1 ORDER BY created_at`, postingID)
}

func (r *PostgresRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*models.JobApplication, error) {
	return r.list(ctx, selectColumns+` WHERE applicant_id = $1 ORDER BY created_at`, applicantID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM job_applications
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteByApplicant removes every application created by the given student.
// Used by the account-deletion cascade.
func (r *PostgresRepository) DeleteByApplicant(ctx context.Context, applicantID string) error {
	query :=
		`DELETE FROM job_applications
		 WHERE applicant_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, applicantID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, applicant_id, posting_id, resume_file_id, cover_letter_file_id, transcript_file_id, created_at FROM job_applications`

func (r *PostgresRepository) scanRow(scan func(dest ...any) error, a *models.JobApplication) error {
	var resume, coverLetter, transcript sql.NullString
	if err := scan(&a.ID, &a.ApplicantID, &a.PostingID, &resume, &coverLetter, &transcript, &a.CreatedAt); err != nil {
		return err
	}
	a.ResumeFileID = resume.String
	a.CoverLetterFileID = coverLetter.String
	a.TranscriptFileID = transcript.String
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.JobApplication, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.JobApplication
	for rows.Next() {
		item := &models.JobApplication{}
		if err := r.scanRow(rows.Scan, item); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
