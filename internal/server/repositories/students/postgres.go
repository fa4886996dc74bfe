package students

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

// PostgresRepository implements student storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a student with its caller-assigned id. A unique violation
// on the email constraint yields common.ErrorAlreadyExists; a violation on
// the primary key (random id collision) yields common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, student *models.Student) error {
	query :=
		`INSERT INTO students (id, name, email, password_hash, class_standing)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		student.ID, student.Name, student.Email, student.PasswordHash, student.ClassStanding)

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

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query :=
		`SELECT id, name, email, password_hash, class_standing, created_at FROM students
		 WHERE email = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query :=
		`SELECT id, name, email, password_hash, class_standing, created_at FROM students
		 WHERE id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Student, error) {
	query :=
		`SELECT id, name, email, password_hash, class_standing, created_at FROM students
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Student
	for rows.Next() {
		item := &models.Student{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.PasswordHash, &item.ClassStanding, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// UpdatePasswordHash replaces the stored hash, used when a legacy hash is
// upgraded after a successful login.
func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query :=
		`UPDATE students SET password_hash = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM students
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

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(&student.ID, &student.Name, &student.Email, &student.PasswordHash, &student.ClassStanding, &student.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return student, nil
}
