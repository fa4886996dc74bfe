package models

import "time"

// Student is a job-seeking account. Applications and uploaded files
// reference it through their author/applicant ids.
type Student struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	ClassStanding string
	CreatedAt     time.Time
}

// Employer posts jobs. IsApproved gates login: a freshly registered
// employer cannot log in until an admin approves the account.
type Employer struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	Company            string
	CompanyDescription string
	IsApproved         bool
	CreatedAt          time.Time
}

// Admin approves employer accounts and can list all students and employers.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Position     string
	CreatedAt    time.Time
}

// Principal returns the auth-layer projection of s.
func (s *Student) Principal() *Principal {
	return &Principal{ID: s.ID, Email: s.Email, PasswordHash: s.PasswordHash, Kind: KindStudent, Approved: true}
}

// Principal returns the auth-layer projection of e.
func (e *Employer) Principal() *Principal {
	return &Principal{ID: e.ID, Email: e.Email, PasswordHash: e.PasswordHash, Kind: KindEmployer, Approved: e.IsApproved}
}

// Principal returns the auth-layer projection of a.
func (a *Admin) Principal() *Principal {
	return &Principal{ID: a.ID, Email: a.Email, PasswordHash: a.PasswordHash, Kind: KindAdmin, Approved: true}
}
