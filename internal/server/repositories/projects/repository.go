// Package projects provides persistence for project records.
package projects

import (
	"context"

	"github.com/dmitrijs2005/projboard/internal/server/models"
)

// ProjectUpdate carries the mutable project fields. OwnerID is deliberately
// absent: ownership is fixed at creation.
type ProjectUpdate struct {
	Title    string
	Deadline string
	Status   string
	Memo     string
}

type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, id string, upd *ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}
