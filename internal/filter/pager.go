package filter

import (
	"strings"

	"github.com/llehouerou/reel/internal/library"
)

// Pager computes the visible rows of the open list: the tracks matching
// the filter text in their current order, optionally grouped by album.
type Pager struct{}

// Page implements view.Pager.
func (Pager) Page(lib *library.Library, ids []string, query string, groupAlbumTracks bool) []string {
	texts := make([]string, len(ids))
	for i, id := range ids {
		if t, ok := lib.Tracks.Get(id); ok {
			texts[i] = searchText(t)
		}
	}

	matched := NewMatcher(texts).Filter(query)
	out := make([]string, len(matched))
	for i, idx := range matched {
		out[i] = ids[idx]
	}
	if groupAlbumTracks {
		out = groupByAlbum(lib, out)
	}
	return out
}

func searchText(t *library.Track) string {
	parts := []string{t.DisplayName()}
	for _, p := range []*string{t.Artist, t.AlbumName, t.AlbumArtist, t.Composer, t.Genre} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, " ")
}

// groupByAlbum pulls the tracks of each album next to the album's first
// row, keeping the relative order inside each album. Tracks without an
// album stay where they are.
func groupByAlbum(lib *library.Library, ids []string) []string {
	var groups [][]string
	byAlbum := make(map[string]int)
	for _, id := range ids {
		key := albumKey(lib, id)
		if key == "" {
			groups = append(groups, []string{id})
			continue
		}
		if g, ok := byAlbum[key]; ok {
			groups[g] = append(groups[g], id)
			continue
		}
		byAlbum[key] = len(groups)
		groups = append(groups, []string{id})
	}

	out := make([]string, 0, len(ids))
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func albumKey(lib *library.Library, id string) string {
	t, ok := lib.Tracks.Get(id)
	if !ok || t.AlbumName == nil || *t.AlbumName == "" {
		return ""
	}
	artist := library.StrValue(t.AlbumArtist)
	if artist == "" {
		artist = library.StrValue(t.Artist)
	}
	return strings.ToLower(artist) + "\x00" + strings.ToLower(*t.AlbumName)
}
