package services

import (
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/projboard/internal/common"
	"github.com/dmitrijs2005/projboard/internal/filex"
	"github.com/dmitrijs2005/projboard/internal/server/authz"
	"github.com/dmitrijs2005/projboard/internal/server/blob"
	"github.com/dmitrijs2005/projboard/internal/server/config"
	"github.com/dmitrijs2005/projboard/internal/server/models"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/repomanager"
)

type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
	allowedExt  map[string]struct{}
}

func NewAttachmentService(db *sql.DB, repomanager repomanager.RepositoryManager, blobs blob.Store, cfg *config.Config) *AttachmentService {
	return &AttachmentService{
		db:          db,
		repomanager: repomanager,
		blobs:       blobs,
		allowedExt:  cfg.AllowedExtensionSet(),
	}
}

// Upload stores a file for an owned project. The order of checks matters:
// unknown project → ErrorNotFound, foreign project → ErrorForbidden,
// disallowed extension → ErrorRejectedFileType (surfaced to the user, never
// silently dropped), unsalvageable filename → ErrorEmptyFileName.
// Content is written under projects/<id>/<name>, so equal names on
// different projects never collide; a re-upload of the same name on the
// same project overwrites.
func (s *AttachmentService) Upload(ctx context.Context, projectID, callerID, fileName string, content io.Reader) (*models.Attachment, error) {

	project, err := s.repomanager.Projects(s.db).Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(project.OwnerID, callerID); err != nil {
		return nil, err
	}

	if _, ok := s.allowedExt[filex.FileExtension(fileName)]; !ok {
		return nil, common.ErrorRejectedFileType
	}

	name := filex.SanitizeFileName(fileName)
	if name == "" {
		return nil, common.ErrorEmptyFileName
	}

	key := blob.Key(project.ID, name)
	size, err := s.blobs.Put(ctx, key, content)
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		ProjectID:  project.ID,
		FileName:   name,
		StorageKey: key,
		SizeBytes:  size,
	}

	attachment, err = s.repomanager.Attachments(s.db).Create(ctx, attachment)
	if err != nil {
		// do not leave content without a metadata row
		_ = s.blobs.Delete(ctx, key)
		return nil, err
	}

	return attachment, nil
}

// ListForProject returns the attachments of an owned project. Same guard
// order as Upload: NotFound before Forbidden.
func (s *AttachmentService) ListForProject(ctx context.Context, projectID, callerID string) ([]*models.Attachment, error) {

	project, err := s.repomanager.Projects(s.db).Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(project.OwnerID, callerID); err != nil {
		return nil, err
	}

	return s.repomanager.Attachments(s.db).ListForProject(ctx, projectID)
}
