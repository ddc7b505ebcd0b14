package tracker

import (
	"context"

	"github.com/eward/timekeep/internal/domain/project"
)

// Store provides whole-document persistence for projects.
type Store interface {
	Load(ctx context.Context) (*project.Document, error)
	Save(ctx context.Context, doc *project.Document) error
}

// Exporter writes every project's recorded time to an external destination
// and returns where it wrote.
type Exporter interface {
	Export(ctx context.Context, doc *project.Document) (string, error)
}
