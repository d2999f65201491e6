package tags

import (
	"strconv"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// readFLACWithTaglib reads FLAC metadata using TagLib as fallback when dhowden/tag fails.
func readFLACWithTaglib(path string) (*Tag, error) {
	t, err := readWithTaglib(path)
	if err != nil {
		return nil, err
	}
	readFLACExtendedTags(path, t)
	return t, nil
}

// readFLACExtendedTags reads the Vorbis comments dhowden/tag does not expose.
func readFLACExtendedTags(path string, t *Tag) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return
	}

	var cmts *flacvorbis.MetaDataBlockVorbisComment
	for _, meta := range f.Meta {
		if meta.Type == goflac.VorbisComment {
			cmts, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return
			}
			break
		}
	}
	if cmts == nil {
		return
	}

	get := func(key string) string {
		values, err := cmts.Get(key)
		if err != nil || len(values) == 0 {
			return ""
		}
		return values[0]
	}

	t.TitleSort = get("TITLESORT")
	t.ArtistSort = get("ARTISTSORT")
	t.ComposerSort = get("COMPOSERSORT")
	t.AlbumSort = get("ALBUMSORT")
	t.AlbumArtistSort = get("ALBUMARTISTSORT")
	t.Grouping = get("GROUPING")
	t.BPM = parseBPM(get("BPM"))
	if t.Composer == "" {
		t.Composer = get("COMPOSER")
	}
	if t.Year == 0 {
		t.Year = parseYear(get("DATE"))
	}

	// Track/disc totals (dhowden/tag may not return these)
	if t.TotalTracks == 0 {
		if n, err := strconv.Atoi(get("TOTALTRACKS")); err == nil {
			t.TotalTracks = n
		}
	}
	if t.TotalDiscs == 0 {
		if n, err := strconv.Atoi(get("TOTALDISCS")); err == nil {
			t.TotalDiscs = n
		}
	}
}
