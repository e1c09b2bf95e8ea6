package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projboard/internal/common"
	"github.com/dmitrijs2005/projboard/internal/dbx"
	"github.com/dmitrijs2005/projboard/internal/server/models"
)

// PostgresRepository implements project storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {

	query :=
		`INSERT INTO projects (owner_id, title, deadline, status, memo)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		project.OwnerID, project.Title, project.Deadline, project.Status, project.Memo).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

// ListForOwner returns only projects whose owner_id equals ownerID, in
// insertion order. Scoping by owner happens here, not in the caller.
func (r *PostgresRepository) ListForOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	query :=
		`SELECT id, owner_id, title, deadline, status, memo, created_at, updated_at FROM projects
		 WHERE owner_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		var item models.Project
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Title, &item.Deadline,
			&item.Status, &item.Memo, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query :=
		`SELECT id, owner_id, title, deadline, status, memo, created_at, updated_at FROM projects
		 WHERE id = $1
		 `

	project := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&project.ID, &project.OwnerID,
		&project.Title, &project.Deadline, &project.Status, &project.Memo,
		&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

// Update rewrites the mutable fields of a project in place. owner_id is not
// part of the statement and can never change here.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd *ProjectUpdate) (*models.Project, error) {
	query :=
		`UPDATE projects
		 SET title = $2, deadline = $3, status = $4, memo = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING id, owner_id, title, deadline, status, memo, created_at, updated_at
		 `

	project := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, id, upd.Title, upd.Deadline, upd.Status, upd.Memo).
		Scan(&project.ID, &project.OwnerID, &project.Title, &project.Deadline,
			&project.Status, &project.Memo, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

// Delete removes a project row. Attachment rows go with it via
// ON DELETE CASCADE; blob cleanup is the service's job.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
