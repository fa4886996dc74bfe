package models

import "time"

// JobApplication links a student to a job posting, optionally referencing
// uploaded documents by their UserFile ids.
type JobApplication struct {
	ID          string
	ApplicantID string
	PostingID   string
	CreatedAt   time.Time

	// Optional document references (UserFile ids). Empty means not attached.
	ResumeFileID      string
	CoverLetterFileID string
	TranscriptFileID  string
}
