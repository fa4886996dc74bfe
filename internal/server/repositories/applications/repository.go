package applications

import (
	"context"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	GetByID(ctx context.Context, id string) (*models.JobApplication, error)
	ListByPosting(ctx context.Context, postingID string) ([]*models.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*models.JobApplication, error)
	Delete(ctx context.Context, id string) error
	DeleteByApplicant(ctx context.Context, applicantID string) error
}
