package httpapi

import (
	"time"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

// View types shape models for JSON responses. Password hashes and storage
// keys never leave through them.

type studentView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ClassStanding string    `json:"class"`
	CreatedAt     time.Time `json:"created_at"`
}

func newStudentView(s *models.Student) studentView {
	return studentView{ID: s.ID, Name: s.Name, Email: s.Email, ClassStanding: s.ClassStanding, CreatedAt: s.CreatedAt}
}

func newStudentViews(items []*models.Student) []studentView {
	out := make([]studentView, 0, len(items))
	for _, s := range items {
		out = append(out, newStudentView(s))
	}
	return out
}

type employerView struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Company            string    `json:"company"`
	CompanyDescription string    `json:"company_description"`
	IsApproved         bool      `json:"is_approved"`
	CreatedAt          time.Time `json:"created_at"`
}

func newEmployerView(e *models.Employer) employerView {
	return employerView{
		ID: e.ID, Name: e.Name, Email: e.Email,
		Company: e.Company, CompanyDescription: e.CompanyDescription,
		IsApproved: e.IsApproved, CreatedAt: e.CreatedAt,
	}
}

func newEmployerViews(items []*models.Employer) []employerView {
	out := make([]employerView, 0, len(items))
	for _, e := range items {
		out = append(out, newEmployerView(e))
	}
	return out
}

type postingView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date"`
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
	Resume      bool      `json:"resume"`
	CoverLetter bool      `json:"cover_letter"`
	Transcript  bool      `json:"transcript"`
	Author      string    `json:"author"`
}

func newPostingView(p *models.JobPosting) postingView {
	return postingView{
		ID: p.ID, Title: p.Title, Company: p.Company, Description: p.Description,
		Location: p.Location, StartDate: p.StartDate, Deadline: p.Deadline,
		CreatedAt: p.CreatedAt, Resume: p.Resume, CoverLetter: p.CoverLetter,
		Transcript: p.Transcript, Author: p.AuthorID,
	}
}

func newPostingViews(items []*models.JobPosting) []postingView {
	out := make([]postingView, 0, len(items))
	for _, p := range items {
		out = append(out, newPostingView(p))
	}
	return out
}

type applicationView struct {
	ID                string    `json:"id"`
	Applicant         string    `json:"applicant"`
	Posting           string    `json:"posting"`
	CreatedAt         time.Time `json:"timestamp"`
	ResumeFileID      string    `json:"resume,omitempty"`
	CoverLetterFileID string    `json:"cover_letter,omitempty"`
	TranscriptFileID  string    `json:"transcript,omitempty"`
}

func newApplicationView(a *models.JobApplication) applicationView {
	return applicationView{
		ID: a.ID, Applicant: a.ApplicantID, Posting: a.PostingID, CreatedAt: a.CreatedAt,
		ResumeFileID: a.ResumeFileID, CoverLetterFileID: a.CoverLetterFileID,
		TranscriptFileID: a.TranscriptFileID,
	}
}

func newApplicationViews(items []*models.JobApplication) []applicationView {
	out := make([]applicationView, 0, len(items))
	for _, a := range items {
		out = append(out, newApplicationView(a))
	}
	return out
}

type fileView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DocumentType string    `json:"document_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func newFileView(f *models.UserFile) fileView {
	return fileView{ID: f.ID, Name: f.Name, DocumentType: f.DocumentType, UploadedAt: f.UploadedAt}
}

func newFileViews(items []*models.UserFile) []fileView {
	out := make([]fileView, 0, len(items))
	for _, f := range items {
		out = append(out, newFileView(f))
	}
	return out
}
