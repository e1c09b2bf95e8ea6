package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/projboard/internal/common"
	"github.com/dmitrijs2005/projboard/internal/dbx"
	"github.com/dmitrijs2005/projboard/internal/server/models"
	attachmentsrepo "github.com/dmitrijs2005/projboard/internal/server/repositories/attachments"
	projectsrepo "github.com/dmitrijs2005/projboard/internal/server/repositories/projects"
	usersrepo "github.com/dmitrijs2005/projboard/internal/server/repositories/users"
)

// --- in-memory repositories ---

type memUsersRepo struct {
	byName map[string]*models.User
	nextID int
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byName: make(map[string]*models.User)}
}

func (r *memUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.byName[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	user.ID = fmt.Sprintf("u-%d", r.nextID)
	r.byName[user.UserName] = user
	return user, nil
}

func (r *memUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	user, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

type memProjectsRepo struct {
	byID   map[string]*models.Project
	order  []string
	nextID int
}

func newMemProjectsRepo() *memProjectsRepo {
	return &memProjectsRepo{byID: make(map[string]*models.Project)}
}

func (r *memProjectsRepo) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	r.nextID++
	project.ID = fmt.Sprintf("p-%d", r.nextID)
	r.byID[project.ID] = project
	r.order = append(r.order, project.ID)
	return project, nil
}

func (r *memProjectsRepo) ListForOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	var result []*models.Project
	for _, id := range r.order {
		if p, ok := r.byID[id]; ok && p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *memProjectsRepo) Get(ctx context.Context, id string) (*models.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *memProjectsRepo) Update(ctx context.Context, id string, upd *projectsrepo.ProjectUpdate) (*models.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Title = upd.Title
	p.Deadline = upd.Deadline
	p.Status = upd.Status
	p.Memo = upd.Memo
	return p, nil
}

func (r *memProjectsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

type memAttachmentsRepo struct {
	byProject map[string][]*models.Attachment
	nextID    int
	createErr error
}

func newMemAttachmentsRepo() *memAttachmentsRepo {
	return &memAttachmentsRepo{byProject: make(map[string][]*models.Attachment)}
}

func (r *memAttachmentsRepo) Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	attachment.ID = fmt.Sprintf("a-%d", r.nextID)
	r.byProject[attachment.ProjectID] = append(r.byProject[attachment.ProjectID], attachment)
	return attachment, nil
}

func (r *memAttachmentsRepo) ListForProject(ctx context.Context, projectID string) ([]*models.Attachment, error) {
	return r.byProject[projectID], nil
}

// --- repo manager over the fakes ---

type memRepoManager struct {
	users       *memUsersRepo
	projects    *memProjectsRepo
	attachments *memAttachmentsRepo
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		users:       newMemUsersRepo(),
		projects:    newMemProjectsRepo(),
		attachments: newMemAttachmentsRepo(),
	}
}

func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }
func (m *memRepoManager) Projects(db dbx.DBTX) projectsrepo.Repository {
	return m.projects
}
func (m *memRepoManager) Attachments(db dbx.DBTX) attachmentsrepo.Repository {
	return m.attachments
}
func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// --- blob store fake ---

type memBlobStore struct {
	objects         map[string][]byte
	putErr          error
	deletedKeys     []string
	deletedPrefixes []string
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: make(map[string][]byte)}
}

func (s *memBlobStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	if s.putErr != nil {
		return 0, s.putErr
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return 0, err
	}
	s.objects[key] = buf.Bytes()
	return n, nil
}

func (s *memBlobStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	s.deletedKeys = append(s.deletedKeys, key)
	return nil
}

func (s *memBlobStore) DeletePrefix(ctx context.Context, prefix string) error {
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	s.deletedPrefixes = append(s.deletedPrefixes, prefix)
	return nil
}

// --- sqlmock db for services that open transactions ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
