package project

import "errors"

var (
	// ErrNotFound indicates the named project doesn't exist.
	ErrNotFound = errors.New("project not found")
	// ErrAlreadyExists indicates a create collision on the name.
	ErrAlreadyExists = errors.New("project already exists")
	// ErrAlreadyTracking indicates a start on a project with an open session.
	ErrAlreadyTracking = errors.New("project is already being tracked")
	// ErrNotTracking indicates a stop on a project with no open session.
	ErrNotTracking = errors.New("project is not being tracked")
	// ErrInvalidInput indicates a missing or blank project name.
	ErrInvalidInput = errors.New("invalid project input")
)
