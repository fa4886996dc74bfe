// Package models defines server-side data models persisted in the database.
package models

// PrincipalKind distinguishes the three account stores. Tokens are issued
// against a specific kind and only resolve against that kind's store.
type PrincipalKind string

const (
	KindStudent  PrincipalKind = "student"
	KindEmployer PrincipalKind = "employer"
	KindAdmin    PrincipalKind = "admin"
)

// Valid reports whether k names one of the known principal kinds.
func (k PrincipalKind) Valid() bool {
	switch k {
	case KindStudent, KindEmployer, KindAdmin:
		return true
	}
	return false
}

// Principal is the kind-independent projection of an account used by the
// authentication layer. Approved is always true for students and admins;
// for employers it mirrors Employer.IsApproved.
type Principal struct {
	ID           string
	Email        string
	PasswordHash string
	Kind         PrincipalKind
	Approved     bool
}
