// Package blob abstracts where attachment bytes live. The database keeps
// only metadata; content goes to a filesystem directory or an S3-compatible
// bucket, keyed by "projects/<project-id>/<filename>".
package blob

import (
	"context"
	"io"
)

// Store persists raw attachment content under opaque keys.
type Store interface {
	// Put writes the content of r under key, overwriting any previous
	// object, and returns the number of bytes written.
	Put(ctx context.Context, key string, r io.Reader) (int64, error)

	// Delete removes a single object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every object whose key starts with prefix.
	// Used to drop a project's whole attachment directory on delete.
	DeletePrefix(ctx context.Context, prefix string) error
}

// ProjectPrefix returns the storage prefix holding all attachments of a
// project. Namespacing by project id keeps same-named uploads from
// different projects apart.
func ProjectPrefix(projectID string) string {
	return "projects/" + projectID + "/"
}

// Key returns the storage key for a single attachment.
func Key(projectID, fileName string) string {
	return ProjectPrefix(projectID) + fileName
}
