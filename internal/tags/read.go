package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
// It returns only tag metadata, not audio stream properties. A file
// without any tags yields an empty Tag.
func Read(path string) (*Tag, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return &Tag{}, nil
	}
	if err != nil {
		var t *Tag
		switch ext {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			t, err = readMP3WithID3v2(path)
		case ExtFLAC:
			t, err = readFLACWithTaglib(path)
		default:
			// ffmpeg-created M4A and some Ogg files
			t, err = readWithTaglib(path)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
		}
		return t, nil
	}

	track, totalTracks := m.Track()
	disc, totalDiscs := m.Disc()
	t := &Tag{
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Composer:    m.Composer(),
		Genre:       m.Genre(),
		Comment:     m.Comment(),
		Year:        m.Year(),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
	}

	switch ext {
	case ExtMP3:
		readMP3ExtendedTags(path, t)
	case ExtFLAC:
		readFLACExtendedTags(path, t)
	default:
		readTaglibExtendedTags(path, t)
	}
	return t, nil
}
