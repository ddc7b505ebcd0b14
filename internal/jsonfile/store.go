// Package jsonfile persists the project document as a single JSON file,
// rewritten wholesale on every save.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/eward/timekeep/internal/storage"
)

// Store is a file-backed storage.Store. Reads and writes go through an
// exclusive flock on a sidecar lock file; writes land in a temp file that
// is renamed over the document so a crashed save never leaves a partial
// file behind.
type Store struct {
	path string
}

// New creates a store backed by the JSON document at path, creating the
// parent directory if needed.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file yields an empty document;
// undecodable content returns storage.ErrCorrupt.
func (s *Store) Load(ctx context.Context) (*project.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc *project.Document
	err := s.withLock(func() error {
		data, err := os.ReadFile(s.path)
		if os.IsNotExist(err) {
			doc = project.NewDocument()
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.path, err)
		}
		if len(data) == 0 {
			doc = project.NewDocument()
			return nil
		}
		doc = project.NewDocument()
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("decoding %s: %v: %w", s.path, err, storage.ErrCorrupt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Save overwrites the document atomically via a temp file and rename.
func (s *Store) Save(ctx context.Context, doc *project.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding projects: %w", err)
	}

	return s.withLock(func() error {
		tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
		if err != nil {
			return fmt.Errorf("creating temp file: %w", err)
		}
		tmpPath := tmp.Name()
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing %s: %w", tmpPath, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("closing %s: %w", tmpPath, err)
		}
		if err := os.Rename(tmpPath, s.path); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("replacing %s: %w", s.path, err)
		}
		return nil
	})
}

// withLock runs fn while holding an exclusive flock on the sidecar lock
// file, guarding against a second timekeep process on the same document.
func (s *Store) withLock(fn func() error) error {
	lock, err := os.OpenFile(s.path+".lock", os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening lock file: %w", err)
	}
	defer lock.Close()

	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("locking %s: %w", lock.Name(), err)
	}
	defer syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)

	return fn()
}
