package repomanager

import (
	"context"
	"database/sql"

	"github.com/GTBioPortal/BioPortal-Backend/internal/dbx"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/admins"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/applications"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/employers"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/postings"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/students"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/userfiles"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run any group of operations inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Students(db dbx.DBTX) students.Repository
	Employers(db dbx.DBTX) employers.Repository
	Admins(db dbx.DBTX) admins.Repository
	Postings(db dbx.DBTX) postings.Repository
	Applications(db dbx.DBTX) applications.Repository
	UserFiles(db dbx.DBTX) userfiles.Repository
}
