package tags

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/reel/internal/library"
)

// Extractor turns a music file into a catalog track record. The zero value
// is ready to use.
type Extractor struct{}

// Extract reads the tags and audio properties of the file at path. The
// returned track has no File or DateAdded; the importer assigns them.
// A missing title falls back to the file name without extension.
func (Extractor) Extract(path string) (*library.Track, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(path))
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	t, err := Read(path)
	if err != nil {
		return nil, err
	}
	audio, err := ReadAudioInfo(path)
	if err != nil {
		return nil, err
	}

	title := t.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	tr := &library.Track{
		Size:         fi.Size(),
		Duration:     audio.Duration,
		Bitrate:      math.Round(float64(fi.Size()) * 8 / audio.Duration),
		SampleRate:   float64(audio.SampleRate),
		DateModified: fi.ModTime().UnixMilli(),

		Name:            library.StrPtr(title),
		Artist:          library.StrPtr(t.Artist),
		Composer:        library.StrPtr(t.Composer),
		SortName:        library.StrPtr(t.TitleSort),
		SortArtist:      library.StrPtr(t.ArtistSort),
		SortComposer:    library.StrPtr(t.ComposerSort),
		Genre:           library.StrPtr(t.Genre),
		Year:            int16Ptr(t.Year),
		Comments:        library.StrPtr(t.Comment),
		Grouping:        library.StrPtr(t.Grouping),
		AlbumName:       library.StrPtr(t.Album),
		AlbumArtist:     library.StrPtr(t.AlbumArtist),
		SortAlbumName:   library.StrPtr(t.AlbumSort),
		SortAlbumArtist: library.StrPtr(t.AlbumArtistSort),
		TrackNum:        int16Ptr(t.TrackNumber),
		TrackCount:      int16Ptr(t.TotalTracks),
		DiscNum:         int16Ptr(t.DiscNumber),
		DiscCount:       int16Ptr(t.TotalDiscs),
	}
	if t.BPM > 0 {
		bpm := t.BPM
		tr.BPM = &bpm
	}
	return tr, nil
}

// int16Ptr returns nil for values that are absent or do not fit.
func int16Ptr(n int) *int16 {
	if n <= 0 || n > math.MaxInt16 {
		return nil
	}
	v := int16(n)
	return &v
}
