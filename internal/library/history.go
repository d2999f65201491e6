package library

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AddPlay counts one play of id now.
func (l *Library) AddPlay(id string) error {
	t, err := l.GetTrack(id)
	if err != nil {
		return err
	}
	t.PlayCount = increment(t.PlayCount)
	t.Plays = append(t.Plays, l.Now())
	return nil
}

// AddSkip counts one skip of id now.
func (l *Library) AddSkip(id string) error {
	t, err := l.GetTrack(id)
	if err != nil {
		return err
	}
	t.SkipCount = increment(t.SkipCount)
	t.Skips = append(t.Skips, l.Now())
	return nil
}

// AddPlayTime records a listening session of durationMs starting at startMs.
func (l *Library) AddPlayTime(id string, startMs, durationMs int64) error {
	if _, err := l.GetTrack(id); err != nil {
		return err
	}
	l.PlayTime = append(l.PlayTime, PlayTime{TrackID: id, Start: startMs, Duration: durationMs})
	return nil
}

func increment(n *int32) *int32 {
	v := int32(1)
	if n != nil {
		v = *n + 1
	}
	return &v
}

// Artists returns the distinct artist and album artist names in the
// catalog, in collation order.
func (l *Library) Artists() []string {
	set := make(map[string]struct{})
	for pair := l.Tracks.Oldest(); pair != nil; pair = pair.Next() {
		for _, name := range []*string{pair.Value.Artist, pair.Value.AlbumArtist} {
			if name != nil && *name != "" {
				set[*name] = struct{}{}
			}
		}
	}

	artists := make([]string, 0, len(set))
	for name := range set {
		artists = append(artists, name)
	}
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	sort.Slice(artists, func(i, j int) bool {
		if cmp := c.CompareString(artists[i], artists[j]); cmp != 0 {
			return cmp < 0
		}
		return artists[i] < artists[j]
	})
	return artists
}
