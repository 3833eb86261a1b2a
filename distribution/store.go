package distribution

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-launcher/core"
)

const (
	FileName    = "distribution.json"
	DevFileName = "distribution_dev.json"
)

// Store reads and writes manifests on disk. Contents are kept verbatim.
type Store struct {
	logger core.Logger
}

func NewStore(logger core.Logger) *Store {
	return &Store{logger: core.ResolveLogger("distribution", nil, logger)}
}

// Read returns the manifest at path. A missing, corrupt or null file yields
// (nil, nil); only unexpected I/O faults are returned as errors.
func (s *Store) Read(path string) (json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log().Error("no distribution file found", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, core.WrapIOError(err, "distribution: read distribution file", path)
	}
	if !json.Valid(raw) || isNullDocument(raw) {
		s.log().Error("malformed distribution file", "path", path)
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

// Write replaces the file at path with doc. The bytes land in a temporary
// sibling first and are renamed into place, so readers never see a partial
// file.
func (s *Store) Write(path string, doc json.RawMessage) error {
	if !json.Valid(doc) || isNullDocument(doc) {
		return core.BadInputError("distribution: document is not valid json", map[string]any{"path": path})
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return core.WrapIOError(err, "distribution: create distribution directory", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return core.WrapIOError(err, "distribution: create temporary file", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(doc); err != nil {
		return core.WrapIOError(err, "distribution: write temporary file", tmpName)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return core.WrapIOError(err, "distribution: chmod temporary file", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		return core.WrapIOError(err, "distribution: sync temporary file", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return core.WrapIOError(err, "distribution: close temporary file", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return core.WrapIOError(err, fmt.Sprintf("distribution: replace %s", filepath.Base(path)), path)
	}
	committed = true
	return nil
}

func (s *Store) log() core.Logger {
	if s == nil || s.logger == nil {
		return core.ResolveLogger("distribution", nil, nil)
	}
	return s.logger
}
