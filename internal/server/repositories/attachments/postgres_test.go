package attachments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/projboard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+attachments\s*\(project_id,\s*filename,\s*storage_key,\s*size_bytes\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*uploaded_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow("a-1", time.Now())
	mock.ExpectQuery(q).
		WithArgs("p-1", "brief.pdf", "projects/p-1/brief.pdf", int64(1024)).
		WillReturnRows(rows)

	a := &models.Attachment{ProjectID: "p-1", FileName: "brief.pdf", StorageKey: "projects/p-1/brief.pdf", SizeBytes: 1024}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "a-1" || got.UploadedAt.IsZero() {
		t.Fatalf("unexpected attachment: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+attachments`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Attachment{ProjectID: "p-1", FileName: "brief.pdf"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestListForProject(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.+\s+FROM\s+attachments\s+WHERE\s+project_id\s*=\s*\$1\s+ORDER\s+BY\s+uploaded_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "project_id", "filename", "storage_key", "size_bytes", "uploaded_at"}).
		AddRow("a-1", "p-1", "brief.pdf", "projects/p-1/brief.pdf", int64(1024), now).
		AddRow("a-2", "p-1", "logo.png", "projects/p-1/logo.png", int64(2048), now)
	mock.ExpectQuery(q).
		WithArgs("p-1").
		WillReturnRows(rows)

	got, err := repo.ListForProject(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("ListForProject error: %v", err)
	}
	if len(got) != 2 || got[0].FileName != "brief.pdf" || got[1].FileName != "logo.png" {
		t.Fatalf("unexpected attachments: %+v", got)
	}
}

func TestListForProject_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.+\s+FROM\s+attachments`).
		WithArgs("p-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "filename", "storage_key", "size_bytes", "uploaded_at"}))

	got, err := repo.ListForProject(context.Background(), "p-2")
	if err != nil {
		t.Fatalf("ListForProject error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no attachments, got %+v", got)
	}
}
