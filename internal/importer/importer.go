// Package importer copies music files into the managed tracks directory
// and records them in the library catalog.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/reel/internal/library"
)

// Extractor reads a source file into a normalized track record.
type Extractor interface {
	Extract(path string) (*library.Track, error)
}

// Importer imports files into a library.
type Importer struct {
	lib       *library.Library
	tracksDir string
	extractor Extractor
	logger    *log.Logger
}

// New creates an importer writing into tracksDir.
func New(lib *library.Library, tracksDir string, extractor Extractor, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Importer{lib: lib, tracksDir: tracksDir, extractor: extractor, logger: logger}
}

// Import extracts the metadata of the file at path, copies it into the
// tracks directory under a generated name and inserts it into the catalog.
// It returns the new track id. Nothing is recorded when any step fails,
// and a partially copied file is removed.
func (im *Importer) Import(path string) (string, error) {
	t, err := im.extractor.Extract(path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	name, err := GenerateFilename(im.tracksDir, library.StrValue(t.Artist), library.StrValue(t.Name), ext)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(im.tracksDir, name)
	if err := copyFile(path, dest); err != nil {
		return "", fmt.Errorf("copy %s: %w", path, err)
	}

	t.File = name
	t.DateAdded = im.lib.Now()
	id := im.lib.NewTrackID()
	im.lib.Tracks.Set(id, t)
	im.logger.Info("imported track", "id", id, "file", name, "from", path)
	return id, nil
}

// copyFile copies src to a new file dst. dst must not exist; it is
// removed again if the copy fails.
func copyFile(src, dst string) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(dst))
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
