package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/arbor/internal/logger"
	"github.com/mmr-tortoise/arbor/internal/model"
	"github.com/mmr-tortoise/arbor/internal/paths"
)

// Store reads and writes the registry file. It is the only component
// that touches the file; callers go through Load/Save for every
// read-modify-write cycle.
type Store struct {
	path string
}

// NewStore creates a Store bound to the given registry file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore creates a Store bound to the standard registry location.
func DefaultStore() *Store {
	return NewStore(paths.RegistryPath())
}

// Path returns the registry file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry from disk. A missing file yields an empty
// registry. A file that exists but fails to parse yields a
// RegistryCorrupt error — the file is never deleted or overwritten in
// that state, so the user can inspect and repair it.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewRegistry(), nil
		}
		return nil, model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read registry file %s", s.path), err)
	}

	var records []model.WorktreeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, model.WrapCLIError(model.ExitRegistryCorrupt,
			fmt.Sprintf("registry file %s is not valid JSON; refusing to touch it", s.path), err)
	}

	return &Registry{records: records}, nil
}

// Save writes the registry atomically: the document is written to a
// temporary file in the registry's directory and renamed over the real
// file, so a crash mid-write can never truncate existing state.
func (s *Store) Save(r *Registry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to create registry directory %s", dir), err)
	}

	// Marshal the bare array. An empty registry still round-trips as []
	// rather than null.
	records := r.records
	if records == nil {
		records = []model.WorktreeRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode registry", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".registry-*.json")
	if err != nil {
		return model.WrapCLIError(model.ExitIOError, "failed to create temporary registry file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return model.WrapCLIError(model.ExitIOError, "failed to write registry", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return model.WrapCLIError(model.ExitIOError, "failed to write registry", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to replace registry file %s", s.path), err)
	}

	logger.Debug("registry saved", "path", s.path, "records", len(records))
	return nil
}
