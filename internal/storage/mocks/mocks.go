package mocks

import (
	"context"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for storage.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Load(ctx context.Context) (*project.Document, error) {
	args := m.Called(ctx)
	if doc, ok := args.Get(0).(*project.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Save(ctx context.Context, doc *project.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
