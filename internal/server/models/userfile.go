package models

import "time"

// Document types accepted for user uploads.
const (
	DocumentResume      = "resume"
	DocumentCoverLetter = "cover_letter"
	DocumentTranscript  = "transcript"
)

// ValidDocumentType reports whether t is one of the accepted document types.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentResume, DocumentCoverLetter, DocumentTranscript:
		return true
	}
	return false
}

// UserFile holds metadata for a document uploaded by a student.
// The bytes themselves live in object storage under StorageKey.
type UserFile struct {
	ID           string
	AuthorID     string
	Name         string
	DocumentType string
	StorageKey   string
	UploadedAt   time.Time
}
