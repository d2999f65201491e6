package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib reads metadata using TagLib as fallback when dhowden/tag fails.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	trackNum, trackTotal := parseNumberPair(tags.get(taglib.TrackNumber))
	discNum, discTotal := parseNumberPair(tags.get(taglib.DiscNumber))
	t := &Tag{
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		Composer:    tags.get("COMPOSER"),
		Comment:     tags.get("COMMENT"),
		Year:        parseYear(tags.get(taglib.Date)),
		TrackNumber: trackNum,
		TotalTracks: trackTotal,
		DiscNumber:  discNum,
		TotalDiscs:  discTotal,
	}
	applyTaglibExtended(tags, t)
	return t, nil
}

// readTaglibExtendedTags reads the sort, grouping and BPM properties of an
// M4A or Opus file using TagLib.
func readTaglibExtendedTags(path string, t *Tag) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return
	}
	applyTaglibExtended(taglibTags(rawTags), t)
}

func applyTaglibExtended(tags taglibTags, t *Tag) {
	t.TitleSort = tags.get("TITLESORT")
	t.ArtistSort = tags.get(taglib.ArtistSort)
	t.ComposerSort = tags.get("COMPOSERSORT")
	t.AlbumSort = tags.get("ALBUMSORT")
	t.AlbumArtistSort = tags.get("ALBUMARTISTSORT")
	t.Grouping = tags.get("GROUPING")
	t.BPM = parseBPM(tags.get("BPM"))

	// Totals stored separately (Vorbis comments, custom M4A atoms)
	if t.TotalTracks == 0 {
		t.TotalTracks = tags.getInt("TRACKTOTAL")
	}
	if t.TotalTracks == 0 {
		t.TotalTracks = tags.getInt("TOTALTRACKS")
	}
	if t.TotalDiscs == 0 {
		t.TotalDiscs = tags.getInt("DISCTOTAL")
	}
	if t.TotalDiscs == 0 {
		t.TotalDiscs = tags.getInt("TOTALDISCS")
	}
}
