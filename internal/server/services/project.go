package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/projboard/internal/common"
	"github.com/dmitrijs2005/projboard/internal/dbx"
	"github.com/dmitrijs2005/projboard/internal/server/authz"
	"github.com/dmitrijs2005/projboard/internal/server/blob"
	"github.com/dmitrijs2005/projboard/internal/server/models"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/projects"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/repomanager"
)

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
}

func NewProjectService(db *sql.DB, repomanager repomanager.RepositoryManager, blobs blob.Store) *ProjectService {
	return &ProjectService{
		db:          db,
		repomanager: repomanager,
		blobs:       blobs,
	}
}

// Create inserts a project owned by ownerID. Title must be non-empty;
// a blank status falls back to the default.
func (s *ProjectService) Create(ctx context.Context, ownerID, title, deadline, status, memo string) (*models.Project, error) {

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrorValidation
	}
	if strings.TrimSpace(status) == "" {
		status = models.DefaultProjectStatus
	}

	project := &models.Project{
		OwnerID:  ownerID,
		Title:    title,
		Deadline: deadline,
		Status:   status,
		Memo:     memo,
	}

	return s.repomanager.Projects(s.db).Create(ctx, project)
}

// ListForOwner returns only the caller's projects.
func (s *ProjectService) ListForOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).ListForOwner(ctx, ownerID)
}

// Get fetches a project and enforces ownership: common.ErrorNotFound for an
// unknown id, common.ErrorForbidden when callerID is not the owner.
func (s *ProjectService) Get(ctx context.Context, projectID, callerID string) (*models.Project, error) {
	project, err := s.repomanager.Projects(s.db).Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(project.OwnerID, callerID); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies the mutable fields after the ownership guard passes.
// OwnerID never changes.
func (s *ProjectService) Update(ctx context.Context, projectID, callerID string, upd *projects.ProjectUpdate) (*models.Project, error) {

	if _, err := s.Get(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	upd.Title = strings.TrimSpace(upd.Title)
	if upd.Title == "" {
		return nil, common.ErrorValidation
	}
	if strings.TrimSpace(upd.Status) == "" {
		upd.Status = models.DefaultProjectStatus
	}

	return s.repomanager.Projects(s.db).Update(ctx, projectID, upd)
}

// Delete removes an owned project. Guard and delete run in one
// transaction; attachment rows cascade with the row and stored content is
// removed by prefix after the commit.
func (s *ProjectService) Delete(ctx context.Context, projectID, callerID string) error {

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		project, err := s.repomanager.Projects(tx).Get(ctx, projectID)
		if err != nil {
			return err
		}
		if err := authz.Authorize(project.OwnerID, callerID); err != nil {
			return err
		}
		return s.repomanager.Projects(tx).Delete(ctx, projectID)
	})
	if err != nil {
		return err
	}

	return s.blobs.DeletePrefix(ctx, blob.ProjectPrefix(projectID))
}
