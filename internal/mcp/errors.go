package mcp

import (
	"errors"
	"fmt"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/eward/timekeep/internal/storage"
)

// APIError represents an MCP error response. The assistant client renders
// the message as speech; every code here is recoverable and leaves
// persisted state unchanged.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrNoPendingOperation indicates specify_project arrived with nothing to
// resolve.
var ErrNoPendingOperation = errors.New("no pending operation")

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "List projects to check the name"}
	case errors.Is(err, project.ErrAlreadyExists):
		return &APIError{Code: "PROJECT_EXISTS", Message: "a project with that name already exists", RecoveryHint: "Pick a different name"}
	case errors.Is(err, project.ErrAlreadyTracking):
		return &APIError{Code: "ALREADY_TRACKING", Message: "that project is already being tracked", RecoveryHint: "Stop it before starting again"}
	case errors.Is(err, project.ErrNotTracking):
		return &APIError{Code: "NOT_TRACKING", Message: "that project was not being tracked", RecoveryHint: "Start tracking first"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_NAME", Message: "a project name is required", RecoveryHint: "Provide a non-empty name"}
	case errors.Is(err, storage.ErrCorrupt):
		return &APIError{Code: "STORAGE_UNAVAILABLE", Message: "stored project data could not be read", RecoveryHint: "Inspect or restore the data file"}
	case errors.Is(err, ErrNoPendingOperation):
		return &APIError{Code: "NO_PENDING_OPERATION", Message: "there is no create or delete waiting for a name", RecoveryHint: "Call create_project or delete_project first"}
	default:
		return nil
	}
}

// toolError normalizes an error for a tool response, preferring a mapped
// APIError over the raw error.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
