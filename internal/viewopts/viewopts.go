// Package viewopts persists presentation preferences: which playlist
// folders are expanded and which track columns are shown.
//
// The file is a cache. A missing or unreadable file yields empty defaults,
// and save failures never roll back the in-memory options.
package viewopts

import (
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
)

// ViewOptions is the content of the view options file.
type ViewOptions struct {
	ShownPlaylistFolders []string `json:"shownPlaylistFolders"`
	// Columns is empty for the default column set.
	Columns []string `json:"columns"`
}

func defaults() ViewOptions {
	return ViewOptions{ShownPlaylistFolders: []string{}, Columns: []string{}}
}

// Store holds the view options and the file they are saved to.
type Store struct {
	path    string
	logger  *log.Logger
	options ViewOptions
}

// Load reads path. It never fails; problems are logged and produce defaults.
func Load(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{path: path, logger: logger, options: defaults()}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("read view options", "path", path, "err", err)
		}
		return s
	}
	var opts ViewOptions
	if err := json.Unmarshal(data, &opts); err != nil {
		logger.Warn("parse view options", "path", path, "err", err)
		return s
	}
	if opts.ShownPlaylistFolders == nil {
		opts.ShownPlaylistFolders = []string{}
	}
	if opts.Columns == nil {
		opts.Columns = []string{}
	}
	s.options = opts
	return s
}

// Options returns a copy of the current options.
func (s *Store) Options() ViewOptions {
	return ViewOptions{
		ShownPlaylistFolders: slices.Clone(s.options.ShownPlaylistFolders),
		Columns:              slices.Clone(s.options.Columns),
	}
}

// FolderShown reports whether folder id is expanded.
func (s *Store) FolderShown(id string) bool {
	return slices.Contains(s.options.ShownPlaylistFolders, id)
}

// SetFolderShown expands or collapses folder id and saves. The change is
// kept in memory even when saving fails.
func (s *Store) SetFolderShown(id string, show bool) error {
	s.options.ShownPlaylistFolders = slices.DeleteFunc(s.options.ShownPlaylistFolders,
		func(folder string) bool { return folder == id })
	if show {
		s.options.ShownPlaylistFolders = append(s.options.ShownPlaylistFolders, id)
	}
	return s.Save()
}

// SetColumns replaces the shown columns and saves. Empty restores the
// default set.
func (s *Store) SetColumns(columns []string) error {
	s.options.Columns = append([]string{}, columns...)
	return s.Save()
}

// Save writes the options atomically.
func (s *Store) Save() error {
	data, err := json.Marshal(s.options)
	if err != nil {
		return err
	}
	return renameio.WriteFile(s.path, data, 0o644)
}
