package tags

import (
	"strings"

	"github.com/bogem/id3v2/v2"
)

// readMP3ExtendedTags reads the ID3v2 frames dhowden/tag does not expose.
func readMP3ExtendedTags(path string, t *Tag) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return
	}
	defer id3tag.Close()
	applyID3Frames(id3tag, t)
}

// readMP3WithID3v2 reads MP3 metadata using only the id3v2 library.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, totalTracks := parseNumberPair(getID3TextFrame(id3tag, "TRCK"))
	disc, totalDiscs := parseNumberPair(getID3TextFrame(id3tag, "TPOS"))
	t := &Tag{
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: getID3TextFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		Year:        parseYear(id3tag.Year()),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
	}
	if comments := id3tag.GetFrames(id3tag.CommonID("Comments")); len(comments) > 0 {
		if c, ok := comments[0].(id3v2.CommentFrame); ok {
			t.Comment = c.Text
		}
	}
	applyID3Frames(id3tag, t)
	return t, nil
}

func applyID3Frames(id3tag *id3v2.Tag, t *Tag) {
	if t.Composer == "" {
		t.Composer = getID3TextFrame(id3tag, "TCOM")
	}
	if t.Year == 0 {
		// ID3v2.4 recording date, then ID3v2.3 year, then release date
		for _, id := range []string{"TDRC", "TYER", "TDRL"} {
			if y := parseYear(getID3TextFrame(id3tag, id)); y > 0 {
				t.Year = y
				break
			}
		}
	}
	t.TitleSort = getID3TextFrame(id3tag, "TSOT")
	t.ArtistSort = getID3TextFrame(id3tag, "TSOP")
	t.ComposerSort = getID3TextFrame(id3tag, "TSOC")
	t.AlbumSort = getID3TextFrame(id3tag, "TSOA")
	t.AlbumArtistSort = getID3TextFrame(id3tag, "TSO2")
	t.Grouping = getID3TextFrame(id3tag, "GRP1")
	t.BPM = parseBPM(getID3TextFrame(id3tag, "TBPM"))
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	switch f := frames[0].(type) {
	case id3v2.TextFrame:
		return f.Text
	case id3v2.UnknownFrame:
		// Frames such as GRP1 are not parsed as text by id3v2.
		if len(f.Body) > 1 && (f.Body[0] == 0 || f.Body[0] == 3) {
			return strings.TrimRight(string(f.Body[1:]), "\x00")
		}
	}
	return ""
}
