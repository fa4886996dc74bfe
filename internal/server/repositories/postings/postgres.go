// Package postings provides a PostgreSQL-backed repository for job postings.
package postings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

// Create inserts a posting with its caller-assigned random id.
// A primary-key collision yields common.ErrorConflict so the caller can
// retry with a fresh id.
func (r *PostgresRepository) Create(ctx context.Context, posting *models.JobPosting) error {
	query :=
		`INSERT INTO job_postings
		   (id, title, company, description, location, start_date, deadline, resume, cover_letter, transcript, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 `

	_, err := r.db.ExecContext(ctx, query,
		posting.ID, posting.Title, posting.Company, posting.Description, posting.Location,
		posting.StartDate, posting.Deadline, posting.Resume, posting.CoverLetter, posting.Transcript,
		posting.AuthorID)

	if err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.JobPosting, error) {
	query := selectColumns + ` WHERE id = $1`

	posting := &models.JobPosting{}
	if err := scanPosting(r.db.QueryRowContext(ctx, query, id).Scan, posting); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return posting, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.JobPosting, error) {
	return r.list(ctx, selectColumns+` ORDER BY created_at DESC`)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.JobPosting, error) {
	return r.list(ctx, selectColumns+` WHERE author_id = $1 ORDER BY created_at DESC`, authorID)
}

// Update applies the allow-listed, non-nil fields of update to the posting.
// Nothing happens when every field is nil.
func (r *PostgresRepository) Update(ctx context.Context, id string, update models.PostingUpdate) error {
	set := make([]string, 0, 9)
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Company != nil {
		add("company", *update.Company)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.StartDate != nil {
		add("start_date", *update.StartDate)
	}
	if update.Deadline != nil {
		add("deadline", *update.Deadline)
	}
	if update.Resume != nil {
		add("resume", *update.Resume)
	}
	if update.CoverLetter != nil {
		add("cover_letter", *update.CoverLetter)
	}
	if update.Transcript != nil {
		add("transcript", *update.Transcript)
	}

	if len(set) == 0 {
		return nil
	}

	query := `UPDATE job_postings SET ` + strings.Join(set, ", ") + ` WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM job_postings
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

const selectColumns = `SELECT id, title, company, description, location, start_date, deadline, created_at, resume, cover_letter, transcript, author_id FROM job_postings`

func scanPosting(scan func(dest ...any) error, p *models.JobPosting) error {
	return scan(&p.ID, &p.Title, &p.Company, &p.Description, &p.Location,
		&p.StartDate, &p.Deadline, &p.CreatedAt, &p.Resume, &p.CoverLetter, &p.Transcript, &p.AuthorID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.JobPosting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.JobPosting
	for rows.Next() {
		item := &models.JobPosting{}
		if err := scanPosting(rows.Scan, item); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
