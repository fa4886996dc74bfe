package admins

import (
	"context"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
