package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
)

var discard = log.New(io.Discard)

// Load reads the library file. A missing file bootstraps a library that
// holds only the root list. Any other failure, including a file that
// parses but breaks the tree invariants checked by Validate, is a
// *LoadError and must be treated as fatal by the caller.
func Load(paths Paths, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = discard
	}

	if err := paths.ensureDirs(); err != nil {
		return nil, &LoadError{Op: "create directories for", Path: paths.LibraryDir, Err: err}
	}

	start := time.Now()
	data, err := os.ReadFile(paths.LibraryJSON)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no library file, starting empty", "path", paths.LibraryJSON)
		return New(), nil
	}
	if err != nil {
		return nil, &LoadError{Op: "read", Path: paths.LibraryJSON, Err: err}
	}
	logger.Debug("read library", "elapsed", time.Since(start))

	start = time.Now()
	lib := empty()
	if err := json.Unmarshal(data, lib); err != nil {
		return nil, &LoadError{Op: "parse", Path: paths.LibraryJSON, Err: err}
	}
	logger.Debug("parse library", "elapsed", time.Since(start),
		"tracks", lib.Tracks.Len(), "tracklists", lib.TrackLists.Len())

	if err := lib.Validate(); err != nil {
		return nil, &LoadError{Op: "validate", Path: paths.LibraryJSON, Err: err}
	}
	return lib, nil
}

// LoadResult is delivered by LoadAsync.
type LoadResult struct {
	Library *Library
	Err     error
}

// LoadAsync runs Load on a separate goroutine and hands the whole library
// over on the returned channel. The channel receives exactly one value.
func LoadAsync(ctx context.Context, paths Paths, logger *log.Logger) <-chan LoadResult {
	out := make(chan LoadResult, 1)
	go func() {
		defer close(out)
		lib, err := Load(paths, logger)
		if ctxErr := ctx.Err(); ctxErr != nil && err == nil {
			err = ctxErr
			lib = nil
		}
		out <- LoadResult{Library: lib, Err: err}
	}()
	return out
}

// Encode serializes the library as tab indented JSON.
func (l *Library) Encode() ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "\t"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the whole library to path, replacing the previous file
// atomically. On failure the previous content is left untouched.
func Save(l *Library, path string, logger *log.Logger) error {
	if logger == nil {
		logger = discard
	}

	start := time.Now()
	data, err := l.Encode()
	if err != nil {
		return err
	}
	logger.Debug("stringify library", "elapsed", time.Since(start))

	start = time.Now()
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Debug("write library", "elapsed", time.Since(start), "bytes", len(data))
	return nil
}
