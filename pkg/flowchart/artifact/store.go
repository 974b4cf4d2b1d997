// Package artifact persists the flow artifact of each project.
//
// A project has at most one flow. Saving overwrites it in place and bumps
// its revision. Stores deal in raw JSON bytes; SaveGraph and LoadGraph add
// sanitizing and validation on top.
package artifact

import (
	"errors"
	"time"
)

// Store persists flow artifacts keyed by project.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the flow for a project.
	// Overwrites any existing flow and increments its revision.
	Save(projectID string, data []byte) error

	// Load retrieves a project's flow.
	// Returns ErrNotFound if the project has no flow.
	Load(projectID string) ([]byte, error)

	// Stat returns metadata for a project's flow without loading it.
	// Returns ErrNotFound if the project has no flow.
	Stat(projectID string) (Info, error)

	// List returns metadata for every stored flow, ordered by project ID.
	// Returns an empty slice (not error) if nothing is stored.
	List() ([]Info, error)

	// Delete removes a project's flow.
	// Returns nil if the project has no flow.
	Delete(projectID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the flow.
type Info struct {
	ProjectID string    `json:"project_id"`
	Revision  int       `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
	Size      int64     `json:"size"`
}

// Sentinel errors for artifact operations.
var (
	// ErrNotFound indicates a project has no stored flow.
	ErrNotFound = errors.New("flow artifact not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("artifact store closed")

	// ErrInvalidFlow indicates a flow failed validation and was not saved.
	ErrInvalidFlow = errors.New("invalid flow")

	// ErrEmptyProjectID indicates an operation was given no project ID.
	ErrEmptyProjectID = errors.New("project ID is empty")
)
