package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/eward/timekeep/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{project.ErrNotFound, "PROJECT_NOT_FOUND"},
		{project.ErrAlreadyExists, "PROJECT_EXISTS"},
		{project.ErrAlreadyTracking, "ALREADY_TRACKING"},
		{project.ErrNotTracking, "NOT_TRACKING"},
		{project.ErrInvalidInput, "INVALID_NAME"},
		{storage.ErrCorrupt, "STORAGE_UNAVAILABLE"},
		{ErrNoPendingOperation, "NO_PENDING_OPERATION"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			apiErr := MapError(fmt.Errorf("wrapped: %w", tc.err))
			require.NotNil(t, apiErr)
			require.Equal(t, tc.code, apiErr.Code)
			require.Contains(t, apiErr.Error(), tc.code)
		})
	}
}

func TestMapErrorUnknown(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("disk on fire")))

	// toolError falls back to the raw error for unmapped failures.
	raw := errors.New("disk on fire")
	require.Equal(t, raw, toolError(raw))
}
