package employers

import (
	"context"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, employer *models.Employer) error
	GetByEmail(ctx context.Context, email string) (*models.Employer, error)
	GetByID(ctx context.Context, id string) (*models.Employer, error)
	List(ctx context.Context) ([]*models.Employer, error)
	SetApproved(ctx context.Context, id string) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
