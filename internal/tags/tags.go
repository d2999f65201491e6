// Package tags reads tag metadata and audio stream properties from music
// files and turns them into catalog track records for MP3, FLAC, Opus and
// M4A files.
package tags

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtM4A  = ".m4a"
)

var (
	// ErrUnreadable is returned when a file cannot be opened or parsed.
	ErrUnreadable = errors.New("unreadable file")
	// ErrUnsupportedExtension is returned for files of an unknown format.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrMissingAudioProperties is returned when duration or sample rate
	// cannot be determined.
	ErrMissingAudioProperties = errors.New("missing audio properties")
)

// Tag contains the tag metadata of a music file. Zero values mean absent.
type Tag struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Composer    string
	Genre       string
	Comment     string
	Grouping    string
	Year        int
	BPM         float64

	TrackNumber int
	TotalTracks int
	DiscNumber  int
	TotalDiscs  int

	TitleSort       string
	ArtistSort      string
	ComposerSort    string
	AlbumSort       string
	AlbumArtistSort string
}

// AudioInfo contains audio stream properties (not tags).
type AudioInfo struct {
	Duration   float64 // seconds
	SampleRate int
}

// Supported reports whether path has a supported music file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtM4A:
		return true
	}
	return false
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getInt returns the first value as an integer, or 0 if not found or invalid.
func (t taglibTags) getInt(key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(t.get(key)))
	return n
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M" format.
func parseNumberPair(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return num, total
}

// parseYear reads the leading year of a date such as "2001" or "2001-05-12".
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) > 4 {
		s = s[:4]
	}
	y, _ := strconv.Atoi(s)
	return y
}

func parseBPM(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
