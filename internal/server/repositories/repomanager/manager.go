// Package repomanager defines the factory interface that vends repository
// implementations bound to a DBTX, so services can run several repositories
// inside one transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/projboard/internal/dbx"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/projects"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to the provided DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Attachments(db dbx.DBTX) attachments.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
