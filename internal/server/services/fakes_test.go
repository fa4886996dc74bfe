package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/dbx"
	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/admins"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/applications"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/employers"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/postings"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/students"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/userfiles"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRepos is an in-memory RepositoryManager. The vended repositories
// ignore the DBTX handle, so transactional code paths need a sqlmock DB
// only for Begin/Commit.
type fakeRepos struct {
	students     *fakeStudentRepo
	employers    *fakeEmployerRepo
	admins       *fakeAdminRepo
	postings     *fakePostingRepo
	applications *fakeApplicationRepo
	userFiles    *fakeFileRepo
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		students:     &fakeStudentRepo{items: map[string]*models.Student{}},
		employers:    &fakeEmployerRepo{items: map[string]*models.Employer{}},
		admins:       &fakeAdminRepo{items: map[string]*models.Admin{}},
		postings:     &fakePostingRepo{items: map[string]*models.JobPosting{}},
		applications: &fakeApplicationRepo{items: map[string]*models.JobApplication{}},
		userFiles:    &fakeFileRepo{items: map[string]*models.UserFile{}},
	}
}

func (f *fakeRepos) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (f *fakeRepos) Students(db dbx.DBTX) students.Repository            { return f.students }
func (f *fakeRepos) Employers(db dbx.DBTX) employers.Repository          { return f.employers }
func (f *fakeRepos) Admins(db dbx.DBTX) admins.Repository                { return f.admins }
func (f *fakeRepos) Postings(db dbx.DBTX) postings.Repository            { return f.postings }
func (f *fakeRepos) Applications(db dbx.DBTX) applications.Repository    { return f.applications }
func (f *fakeRepos) UserFiles(db dbx.DBTX) userfiles.Repository          { return f.userFiles }

type fakeStudentRepo struct {
	items map[string]*models.Student

	// failCreates makes the next N Create calls report an id collision.
	failCreates int
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if r.failCreates > 0 {
		r.failCreates--
		return common.ErrorConflict
	}
	for _, s := range r.items {
		if s.Email == student.Email {
			return common.ErrorAlreadyExists
		}
	}
	cp := *student
	r.items[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, s := range r.items {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) List(ctx context.Context) ([]*models.Student, error) {
	out := make([]*models.Student, 0, len(r.items))
	for _, s := range r.items {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStudentRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	s, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	s.PasswordHash = passwordHash
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeEmployerRepo struct {
	items map[string]*models.Employer
}

func (r *fakeEmployerRepo) Create(ctx context.Context, employer *models.Employer) error {
	for _, e := range r.items {
		if e.Email == employer.Email {
			return common.ErrorAlreadyExists
		}
	}
	cp := *employer
	r.items[employer.ID] = &cp
	return nil
}

func (r *fakeEmployerRepo) GetByEmail(ctx context.Context, email string) (*models.Employer, error) {
	for _, e := range r.items {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeEmployerRepo) GetByID(ctx context.Context, id string) (*models.Employer, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployerRepo) List(ctx context.Context) ([]*models.Employer, error) {
	out := make([]*models.Employer, 0, len(r.items))
	for _, e := range r.items {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEmployerRepo) SetApproved(ctx context.Context, id string) error {
	e, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	e.IsApproved = true
	return nil
}

func (r *fakeEmployerRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	e, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	e.PasswordHash = passwordHash
	return nil
}

type fakeAdminRepo struct {
	items map[string]*models.Admin
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	for _, a := range r.items {
		if a.Email == admin.Email {
			return common.ErrorAlreadyExists
		}
	}
	cp := *admin
	r.items[admin.ID] = &cp
	return nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, a := range r.items {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	a, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

type fakePostingRepo struct {
	items map[string]*models.JobPosting
}

func (r *fakePostingRepo) Create(ctx context.Context, posting *models.JobPosting) error {
	if _, ok := r.items[posting.ID]; ok {
		return common.ErrorConflict
	}
	cp := *posting
	r.items[posting.ID] = &cp
	return nil
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id string) (*models.JobPosting, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostingRepo) ListAll(ctx context.Context) ([]*models.JobPosting, error) {
	out := make([]*models.JobPosting, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePostingRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.JobPosting, error) {
	var out []*models.JobPosting
	for _, p := range r.items {
		if p.AuthorID == authorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePostingRepo) Update(ctx context.Context, id string, update models.PostingUpdate) error {
	p, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Company != nil {
		p.Company = *update.Company
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Location != nil {
		p.Location = *update.Location
	}
	if update.StartDate != nil {
		p.StartDate = *update.StartDate
	}
	if update.Deadline != nil {
		p.Deadline = *update.Deadline
	}
	if update.Resume != nil {
		p.Resume = *update.Resume
	}
	if update.CoverLetter != nil {
		p.CoverLetter = *update.CoverLetter
	}
	if update.Transcript != nil {
		p.Transcript = *update.Transcript
	}
	return nil
}

func (r *fakePostingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeApplicationRepo struct {
	items map[string]*models.JobApplication
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *models.JobApplication) error {
	if _, ok := r.items[app.ID]; ok {
		return common.ErrorConflict
	}
	cp := *app
	r.items[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*models.JobApplication, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeApplicationRepo) ListByPosting(ctx context.Context, postingID string) ([]*models.JobApplication, error) {
	var out []*models.JobApplication
	for _, a := range r.items {
		if a.PostingID == postingID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*models.JobApplication, error) {
	var out []*models.JobApplication
	for _, a := range r.items {
		if a.ApplicantID == applicantID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeApplicationRepo) DeleteByApplicant(ctx context.Context, applicantID string) error {
	for id, a := range r.items {
		if a.ApplicantID == applicantID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeFileRepo struct {
	items map[string]*models.UserFile

	failCreates int
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.UserFile) error {
	if r.failCreates > 0 {
		r.failCreates--
		return common.ErrorConflict
	}
	cp := *file
	r.items[file.ID] = &cp
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id string) (*models.UserFile, error) {
	f, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.UserFile, error) {
	var out []*models.UserFile
	for _, f := range r.items {
		if f.AuthorID == authorID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeFileRepo) DeleteByAuthor(ctx context.Context, authorID string) error {
	for id, f := range r.items {
		if f.AuthorID == authorID {
			delete(r.items, id)
		}
	}
	return nil
}

// fakeBlobStore keeps objects in a map and records deletions.
type fakeBlobStore struct {
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (s *fakeBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

func (s *fakeBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return data, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}
