package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

func TestFileUpload(t *testing.T) {
	t.Parallel()
	repos := newFakeRepos()
	blobs := newFakeBlobStore()
	svc := NewFileService(nil, repos, blobs, testLogger())

	file, err := svc.Upload(context.Background(), "stu1", "resume.pdf", models.DocumentResume,
		[]byte("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if file.AuthorID != "stu1" || file.StorageKey == "" {
		t.Errorf("unexpected file %+v", file)
	}
	if !bytes.Equal(blobs.objects[file.StorageKey], []byte("%PDF-1.4")) {
		t.Errorf("blob content missing under %q", file.StorageKey)
	}
	if _, ok := repos.userFiles.items[file.ID]; !ok {
		t.Errorf("metadata row not stored")
	}
}

func TestFileUpload_BadDocumentType(t *testing.T) {
	t.Parallel()
	svc := NewFileService(nil, newFakeRepos(), newFakeBlobStore(), testLogger())

	_, err := svc.Upload(context.Background(), "stu1", "x.pdf", "selfie", []byte("data"), "application/pdf")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("got %v, want ErrorValidation", err)
	}
}

func TestFileUpload_RowFailureCleansBlob(t *testing.T) {
	t.Parallel()
	repos := newFakeRepos()
	repos.userFiles.failCreates = maxIDAttempts
	blobs := newFakeBlobStore()
	svc := NewFileService(nil, repos, blobs, testLogger())

	_, err := svc.Upload(context.Background(), "stu1", "resume.pdf", models.DocumentResume,
		[]byte("data"), "application/pdf")
	if !errors.Is(err, common.ErrorIDExhausted) {
		t.Fatalf("got %v, want ErrorIDExhausted", err)
	}
	if len(blobs.objects) != 0 {
		t.Errorf("blob left behind after failed upload")
	}
}

func TestFileFetch_Student(t *testing.T) {
	t.Parallel()
	repos := newFakeRepos()
	blobs := newFakeBlobStore()
	svc := NewFileService(nil, repos, blobs, testLogger())
	ctx := context.Background()

	repos.userFiles.items["f1"] = &models.UserFile{ID: "f1", AuthorID: "stu1", StorageKey: "k1"}
	blobs.objects["k1"] = []byte("data")

	_, data, err := svc.Fetch(ctx, &auth.Identity{ID: "stu1", Kind: models.KindStudent}, "f1", "")
	if err != nil {
		t.Fatalf("owner fetch: %v", err)
	}
	if !bytes.Equal(data, []byte("data")) {
		t.Errorf("data = %q", data)
	}

	_, _, err = svc.Fetch(ctx, &auth.Identity{ID: "stu2", Kind: models.KindStudent}, "f1", "")
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("foreign fetch: got %v, want ErrorForbidden", err)
	}
}

func TestFileFetch_EmployerThroughApplication(t *testing.T) {
	t.Parallel()
	repos := newFakeRepos()
	blobs := newFakeBlobStore()
	svc := NewFileService(nil, repos, blobs, testLogger())
	ctx := context.Background()

	repos.userFiles.items["f1"] = &models.UserFile{ID: "f1", AuthorID: "stu1", StorageKey: "k1"}
	repos.postings.items["p1"] = &models.JobPosting{ID: "p1", AuthorID: "emp1"}
	repos.applications.items["app1"] = &models.JobApplication{
		ID: "app1", ApplicantID: "stu1", PostingID: "p1", ResumeFileID: "f1",
	}
	blobs.objects["k1"] = []byte("data")

	ident := &auth.Identity{ID: "emp1", Kind: models.KindEmployer}
	if _, _, err := svc.Fetch(ctx, ident, "f1", "app1"); err != nil {
		t.Fatalf("posting author fetch: %v", err)
	}

	// No application id means no path from the employer to the file.
	if _, _, err := svc.Fetch(ctx, ident, "f1", ""); !errors.Is(err, common.ErrorForbidden) {
		t.Errorf("fetch without application: got %v, want ErrorForbidden", err)
	}

	other := &auth.Identity{ID: "emp2", Kind: models.KindEmployer}
	if _, _, err := svc.Fetch(ctx, other, "f1", "app1"); !errors.Is(err, common.ErrorForbidden) {
		t.Errorf("other employer fetch: got %v, want ErrorForbidden", err)
	}

	// An application by a different student must not expose this file.
	repos.applications.items["app2"] = &models.JobApplication{
		ID: "app2", ApplicantID: "stu2", PostingID: "p1",
	}
	if _, _, err := svc.Fetch(ctx, ident, "f1", "app2"); !errors.Is(err, common.ErrorForbidden) {
		t.Errorf("mismatched applicant fetch: got %v, want ErrorForbidden", err)
	}
}

func TestFileDelete(t *testing.T) {
	t.Parallel()
	repos := newFakeRepos()
	blobs := newFakeBlobStore()
	svc := NewFileService(nil, repos, blobs, testLogger())
	ctx := context.Background()

	repos.userFiles.items["f1"] = &models.UserFile{ID: "f1", AuthorID: "stu1", StorageKey: "k1"}
	blobs.objects["k1"] = []byte("data")

	if err := svc.Delete(ctx, "stu2", "f1"); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("foreign delete: got %v, want ErrorForbidden", err)
	}

	if err := svc.Delete(ctx, "stu1", "f1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := repos.userFiles.items["f1"]; ok {
		t.Errorf("metadata row survived deletion")
	}
	if _, ok := blobs.objects["k1"]; ok {
		t.Errorf("blob survived deletion")
	}
}
