package admins

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

func (r *PostgresRepository) Create(ctx context.Context, admin *models.Admin) error {
	query :=
		`INSERT INTO admins (id, name, email, password_hash, position)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		admin.ID, admin.Name, admin.Email, admin.PasswordHash, admin.Position)

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

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query :=
		`SELECT id, name, email, password_hash, position, created_at FROM admins
		 WHERE email = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query :=
		`SELECT id, name, email, password_hash, position, created_at FROM admins
		 WHERE id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query :=
		`UPDATE admins SET password_hash = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Admin, error) {
	admin := &models.Admin{}
	err := row.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.Position, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return admin, nil
}
