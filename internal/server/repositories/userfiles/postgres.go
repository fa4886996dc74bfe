// Package userfiles stores metadata for uploaded documents. The document
// bytes themselves live in object storage; only the storage key is kept here.
package userfiles

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

func (r *PostgresRepository) Create(ctx context.Context, file *models.UserFile) error {
	query :=
		`INSERT INTO user_files (id, author_id, name, document_type, storage_key)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.AuthorID, file.Name, file.DocumentType, file.StorageKey)

	if err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.UserFile, error) {
	query := selectColumns + ` WHERE id = $1`

	file := &models.UserFile{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&file.ID, &file.AuthorID, &file.Name, &file.DocumentType, &file.StorageKey, &file.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.UserFile, error) {
	query := selectColumns + ` WHERE author_id = $1 ORDER BY uploaded_at`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.UserFile
	for rows.Next() {
		item := &models.UserFile{}
		if err := rows.Scan(&item.ID, &item.AuthorID, &item.Name, &item.DocumentType, &item.StorageKey, &item.UploadedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM user_files
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

// DeleteByAuthor removes every file row owned by the given student.
// Callers are responsible for deleting the corresponding blobs.
func (r *PostgresRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	query :=
		`DELETE FROM user_files
		 WHERE author_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, authorID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, author_id, name, document_type, storage_key, uploaded_at FROM user_files`
