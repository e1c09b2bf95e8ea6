package models

import "time"

// Attachment describes a file uploaded to a project. The bytes themselves
// live in blob storage under StorageKey; ownership is transitively the
// parent project's owner.
type Attachment struct {
	ID         string
	ProjectID  string
	FileName   string
	StorageKey string
	SizeBytes  int64
	UploadedAt time.Time
}
