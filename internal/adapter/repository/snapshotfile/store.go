package snapshotfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/simaogato/poolledger-backend/internal/domain"
)

// Store persists the full state snapshot as a single JSON document on
// disk. It implements domain.SnapshotStore. Writes go through a temp file
// and rename so a crash mid-write never leaves a torn snapshot.
type Store struct {
	path string
}

// NewStore creates a snapshot store rooted at the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the snapshot file. A missing file is not an error: it
// returns the pristine default state.
func (s *Store) Load(_ context.Context) (domain.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewSnapshot(), nil
		}
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save writes the full snapshot back atomically
func (s *Store) Save(_ context.Context, snap domain.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Reset removes the snapshot file; a missing file is fine
func (s *Store) Reset(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}
