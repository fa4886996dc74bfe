package postings

import (
	"context"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, posting *models.JobPosting) error
	GetByID(ctx context.Context, id string) (*models.JobPosting, error)
	ListAll(ctx context.Context) ([]*models.JobPosting, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.JobPosting, error)
	Update(ctx context.Context, id string, update models.PostingUpdate) error
	Delete(ctx context.Context, id string) error
}
