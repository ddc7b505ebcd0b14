package storage

import "errors"

var (
	// ErrCorrupt is returned when the backing store exists but cannot be
	// decoded. Callers must not coerce this to an empty document: absent
	// data and corrupt data are distinct conditions.
	ErrCorrupt = errors.New("store content is corrupt")
)
