// Package config loads the reel configuration from TOML files.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/reel/internal/library"
)

const appName = "reel"

type Config struct {
	LibraryDir       string `koanf:"library_dir"`        // holds Library.json and Tracks/
	LocalDataDir     string `koanf:"local_data_dir"`     // view options and session database
	LogLevel         string `koanf:"log_level"`          // "debug", "info", "warn", "error"
	GroupAlbumTracks bool   `koanf:"group_album_tracks"` // keep album tracks together in listings
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		LibraryDir:       filepath.Join(xdg.UserDirs.Music, "Reel"),
		LocalDataDir:     filepath.Join(xdg.DataHome, appName),
		LogLevel:         "info",
		GroupAlbumTracks: true,
	}
}

// Load reads the user and working-directory config files (last wins).
func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.LibraryDir = expandPath(cfg.LibraryDir)
	cfg.LocalDataDir = expandPath(cfg.LocalDataDir)
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/reel/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Paths derives the on-disk layout of the library.
func (c *Config) Paths() library.Paths {
	return library.NewPaths(c.LibraryDir, c.LocalDataDir)
}
