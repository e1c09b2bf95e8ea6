package models

import "time"

// DefaultProjectStatus is applied when a project is created with a blank status.
const DefaultProjectStatus = "in progress"

// Project is a tracked work item owned by exactly one user. OwnerID is fixed
// at creation and never changes; Deadline is stored as an opaque string and
// not validated as a date.
type Project struct {
	ID        string
	OwnerID   string
	Title     string
	Deadline  string
	Status    string
	Memo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
