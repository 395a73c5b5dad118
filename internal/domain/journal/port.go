package journal

import "context"

// Repository port for the shared document store. All mutating operations
// are serialized by the implementation: two concurrent mutations must never
// both read the same prior state and overwrite each other's write.
type Repository interface {
	// AppendEntry inserts at the head of the entry sequence, assigning a
	// unique identifier when the entry has none, and returns the stored entry.
	AppendEntry(ctx context.Context, e Entry) (Entry, error)
	// ListEntries returns a snapshot copy, head = newest.
	ListEntries(ctx context.Context) ([]Entry, error)
	// DeleteEntry removes the matching entry and returns it so the caller
	// can release the stored image. ErrNotFound if no entry has the id.
	DeleteEntry(ctx context.Context, id string) (Entry, error)
	// CreateProject validates the name, assigns identifier and timestamps
	// and appends to the project sequence.
	CreateProject(ctx context.Context, cmd CreateProjectCommand) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	// Snapshot returns an immutable copy of the whole document.
	Snapshot(ctx context.Context) (Document, error)
}

// ImageStore port for the uploaded photo files.
type ImageStore interface {
	// Save stores the raw upload under a unique name derived from
	// originalName and returns a reference (path or URL).
	Save(ctx context.Context, data []byte, originalName string) (string, error)
	// Remove releases a previously stored image. Removing a reference that
	// no longer exists is not an error.
	Remove(ctx context.Context, ref string) error
}
