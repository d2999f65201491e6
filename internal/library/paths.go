package library

import (
	"os"
	"path/filepath"
)

const (
	tracksDirName   = "Tracks"
	libraryFileName = "Library.json"
	viewFileName    = "view.json"
	sessionDBName   = "session.db"
)

// Paths locates everything the library reads and writes on disk.
type Paths struct {
	LibraryDir   string
	TracksDir    string
	LibraryJSON  string
	LocalDataDir string
}

// NewPaths derives the standard layout from the two configurable roots.
func NewPaths(libraryDir, localDataDir string) Paths {
	return Paths{
		LibraryDir:   libraryDir,
		TracksDir:    filepath.Join(libraryDir, tracksDirName),
		LibraryJSON:  filepath.Join(libraryDir, libraryFileName),
		LocalDataDir: localDataDir,
	}
}

// ViewOptionsFile is the presentation cache file.
func (p Paths) ViewOptionsFile() string {
	return filepath.Join(p.LocalDataDir, viewFileName)
}

// SessionDB is the session state database.
func (p Paths) SessionDB() string {
	return filepath.Join(p.LocalDataDir, sessionDBName)
}

// TrackPath returns the absolute path of a catalog entry's file.
func (p Paths) TrackPath(t *Track) string {
	return filepath.Join(p.TracksDir, t.File)
}

func (p Paths) ensureDirs() error {
	for _, dir := range []string{p.LibraryDir, p.TracksDir, p.LocalDataDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
