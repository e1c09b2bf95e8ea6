// Package attachments provides persistence for attachment metadata.
// File bytes live in blob storage; only metadata rows are kept here.
package attachments

import (
	"context"

	"github.com/dmitrijs2005/projboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error)
	ListForProject(ctx context.Context, projectID string) ([]*models.Attachment, error)
}
