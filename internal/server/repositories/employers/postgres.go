package employers

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

func (r *PostgresRepository) Create(ctx context.Context, employer *models.Employer) error {
	query :=
		`INSERT INTO employers (id, name, email, password_hash, company, company_description, is_approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		employer.ID, employer.Name, employer.Email, employer.PasswordHash,
		employer.Company, employer.CompanyDescription, employer.IsApproved)

	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok {
			if strings.Contains(constraint, "email") {
				return common.ErrorAlreadyExists
			}
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Employer, error) {
	query := selectColumns + ` WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Employer, error) {
	query := selectColumns + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Employer, error) {
	query := selectColumns + ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Employer
	for rows.Next() {
		item := &models.Employer{}
		if err := scanEmployer(rows.Scan, item); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// SetApproved marks the employer approved. The transition is one-way;
// there is no un-approve operation.
func (r *PostgresRepository) SetApproved(ctx context.Context, id string) error {
	query :=
		`UPDATE employers SET is_approved = TRUE
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

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query :=
		`UPDATE employers SET password_hash = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, name, email, password_hash, company, company_description, is_approved, created_at FROM employers`

func scanEmployer(scan func(dest ...any) error, e *models.Employer) error {
	return scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Company, &e.CompanyDescription, &e.IsApproved, &e.CreatedAt)
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Employer, error) {
	employer := &models.Employer{}
	if err := scanEmployer(row.Scan, employer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return employer, nil
}
