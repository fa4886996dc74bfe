package models

import "time"

// JobPosting describes an open position created by an employer.
// AuthorID is the ownership field checked before any mutation.
type JobPosting struct {
	ID          string
	Title       string
	Company     string
	Description string
	Location    string
	StartDate   time.Time
	Deadline    time.Time
	CreatedAt   time.Time

	// Required attachments for applications to this posting.
	Resume      bool
	CoverLetter bool
	Transcript  bool

	AuthorID string
}

// PostingUpdate is the allow-listed set of mutable posting fields.
// Nil pointers mean "leave unchanged"; request payloads are never applied
// field-by-field to persisted records.
type PostingUpdate struct {
	Title       *string
	Company     *string
	Description *string
	Location    *string
	StartDate   *time.Time
	Deadline    *time.Time
	Resume      *bool
	CoverLetter *bool
	Transcript  *bool
}
