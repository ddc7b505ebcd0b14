package storage

import (
	"context"

	"github.com/eward/timekeep/internal/domain/project"
)

// Store provides whole-document persistence for the project set. Load and
// Save move the entire document: there are no incremental updates, every
// mutation rewrites the full state.
type Store interface {
	// Load reads the persisted document. A missing backing file is not an
	// error and yields an empty document; unreadable or unparsable content
	// returns an error wrapping ErrCorrupt.
	Load(ctx context.Context) (*project.Document, error)

	// Save overwrites the persisted document with doc.
	Save(ctx context.Context, doc *project.Document) error
}
