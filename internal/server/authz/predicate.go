// Package authz holds the per-resource authorization predicates. They are
// pure functions over an already-resolved principal and the target resource,
// and they are the only gate applied before a mutating or sensitive-read
// operation. A failed predicate surfaces as common.ErrorForbidden, distinct
// from authentication failures.
package authz

import "github.com/GTBioPortal/BioPortal-Backend/internal/server/models"

// CanLogin reports whether the employer account may log in.
// Students and admins have no approval gate.
func CanLogin(employer *models.Employer) bool {
	return employer.IsApproved
}

// CanManagePosting reports whether employerID authored the posting.
func CanManagePosting(employerID string, posting *models.JobPosting) bool {
	return posting != nil && posting.AuthorID == employerID
}

// CanManageApplication reports whether studentID created the application.
func CanManageApplication(studentID string, app *models.JobApplication) bool {
	return app != nil && app.ApplicantID == studentID
}

// CanViewApplication reports whether the principal may read the application:
// the applicant themself, the employer that authored the posting it targets,
// or an admin.
func CanViewApplication(kind models.PrincipalKind, principalID string, app *models.JobApplication, posting *models.JobPosting) bool {
	if app == nil {
		return false
	}
	switch kind {
	case models.KindAdmin:
		return true
	case models.KindStudent:
		return app.ApplicantID == principalID
	case models.KindEmployer:
		return posting != nil && posting.ID == app.PostingID && posting.AuthorID == principalID
	}
	return false
}

// CanManageFile reports whether studentID uploaded the file.
func CanManageFile(studentID string, file *models.UserFile) bool {
	return file != nil && file.AuthorID == studentID
}
