package attachments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/projboard/internal/dbx"
	"github.com/dmitrijs2005/projboard/internal/server/models"
)

// PostgresRepository implements attachment storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {

	query :=
		`INSERT INTO attachments (project_id, filename, storage_key, size_bytes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		attachment.ProjectID, attachment.FileName, attachment.StorageKey, attachment.SizeBytes).
		Scan(&attachment.ID, &attachment.UploadedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachment, nil
}

// ListForProject returns all attachments of a project in upload order.
// This is the explicit replacement for relationship traversal: callers ask
// for attachments, nothing is lazily loaded.
func (r *PostgresRepository) ListForProject(ctx context.Context, projectID string) ([]*models.Attachment, error) {
	query :=
		`SELECT id, project_id, filename, storage_key, size_bytes, uploaded_at FROM attachments
		 WHERE project_id = $1
		 ORDER BY uploaded_at
		 `

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Attachment
	for rows.Next() {
		var item models.Attachment
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.FileName,
			&item.StorageKey, &item.SizeBytes, &item.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
