package userfiles

import (
	"context"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.UserFile) error
	GetByID(ctx context.Context, id string) (*models.UserFile, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.UserFile, error)
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}
