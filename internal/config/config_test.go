package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"tilde with nested path", "~/music/library/albums", filepath.Join(home, "music", "library", "albums")},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"relative path unchanged", "music/albums", "music/albums"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(xdg.ConfigHome, "reel", "config.toml"), paths[0])
	assert.Equal(t, "config.toml", paths[len(paths)-1], "local config has the highest priority")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom([]string{filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def, cfg)
	assert.Equal(t, "Reel", filepath.Base(cfg.LibraryDir))
	assert.Equal(t, "reel", filepath.Base(cfg.LocalDataDir))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.GroupAlbumTracks)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
library_dir = "/data/music"
log_level = "debug"
group_album_tracks = false
`)

	cfg, err := loadFrom([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "/data/music", cfg.LibraryDir)
	assert.Equal(t, Default().LocalDataDir, cfg.LocalDataDir, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.GroupAlbumTracks)
}

func TestLoad_LastFileWins(t *testing.T) {
	first := writeConfig(t, t.TempDir(), `library_dir = "/first"
log_level = "warn"`)
	second := writeConfig(t, t.TempDir(), `library_dir = "/second"`)

	cfg, err := loadFrom([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "/second", cfg.LibraryDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}
	path := writeConfig(t, t.TempDir(), `
library_dir = "~/Reel"
local_data_dir = "~/.local/share/reel"
`)

	cfg, err := loadFrom([]string{path})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Reel"), cfg.LibraryDir)
	assert.Equal(t, filepath.Join(home, ".local", "share", "reel"), cfg.LocalDataDir)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `library_dir = [unclosed`)

	_, err := loadFrom([]string{path})
	require.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := &Config{LibraryDir: "/lib", LocalDataDir: "/data"}
	p := cfg.Paths()

	assert.Equal(t, "/lib", p.LibraryDir)
	assert.Equal(t, filepath.Join("/lib", "Tracks"), p.TracksDir)
	assert.Equal(t, filepath.Join("/lib", "Library.json"), p.LibraryJSON)
	assert.Equal(t, filepath.Join("/data", "view.json"), p.ViewOptionsFile())
	assert.Equal(t, filepath.Join("/data", "session.db"), p.SessionDB())
}
