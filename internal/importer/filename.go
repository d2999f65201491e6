package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// maxNameBytes leaves room for the collision suffix and the extension
// within the usual 255-byte filename limit.
const maxNameBytes = 230

// maxCollisions bounds the numbered suffixes tried for one artist and title.
const maxCollisions = 500

var (
	// reIllegalFileChars matches characters not allowed in filenames.
	reIllegalFileChars = regexp.MustCompile(`[/\\?<>:*"|]`)
	// reHexPrefix matches "0x", kept out of names to avoid control sequences.
	reHexPrefix = regexp.MustCompile(`0x`)
)

// sanitizeFilename replaces illegal filename characters with "_" and
// truncates the result to maxNameBytes on a rune boundary.
func sanitizeFilename(s string) string {
	s = reIllegalFileChars.ReplaceAllString(s, "_")
	s = reHexPrefix.ReplaceAllString(s, "__")
	if len(s) <= maxNameBytes {
		return s
	}
	s = s[:maxNameBytes]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// GenerateFilename returns a name "Artist - Title.ext" that does not exist
// yet in dir. Collisions get a numbered suffix: "Artist - Title 1.ext",
// "Artist - Title 2.ext" and so on. ext includes the leading dot.
func GenerateFilename(dir, artist, title, ext string) (string, error) {
	base := sanitizeFilename(artist + " - " + title)
	for n := range maxCollisions {
		name := base + ext
		if n > 0 {
			name = base + " " + strconv.Itoa(n) + ext
		}
		_, err := os.Lstat(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("already %d tracks named %q", maxCollisions, base)
}
