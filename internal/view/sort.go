package view

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/llehouerou/reel/internal/library"
)

// IndexKey sorts a playlist by its stored order. Its direction flag is
// inverted: descending means natural order.
const IndexKey = "index"

// applySort orders st.trackIDs by key.
//
// Sorting again by the current key reverses the sequence and flips the
// direction. IndexKey restores a playlist's stored order and is ignored for
// folders and special lists. Any other key stable-sorts ascending, then
// reverses for every kind but text, whose resting direction is ascending.
func applySort(lib *library.Library, st *state, key string) error {
	if key == st.sortKey {
		slices.Reverse(st.trackIDs)
		st.sortDesc = !st.sortDesc
		return nil
	}

	if key == IndexKey {
		tl, err := lib.GetTrackList(st.openID)
		if err != nil {
			return err
		}
		pl, ok := tl.(*library.Playlist)
		if !ok {
			return nil
		}
		st.trackIDs = slices.Clone(pl.Tracks)
		st.sortKey = IndexKey
		st.sortDesc = true
		return nil
	}

	field := library.MustField(key)
	sortByField(lib, st.trackIDs, field)
	desc := field.Kind != library.KindText
	if desc {
		slices.Reverse(st.trackIDs)
	}
	st.sortKey = key
	st.sortDesc = desc
	return nil
}

type entry struct {
	id    string
	track *library.Track
}

// sortByField stable-sorts ids ascending by field. Every id must be in the
// catalog.
func sortByField(lib *library.Library, ids []string, field library.Field) {
	entries := make([]entry, len(ids))
	for i, id := range ids {
		t, ok := lib.Tracks.Get(id)
		if !ok {
			panic(fmt.Sprintf("view: track %s not in catalog", id))
		}
		entries[i] = entry{id: id, track: t}
	}

	compare := comparator(field)
	slices.SortStableFunc(entries, func(a, b entry) int {
		return compare(a.track, b.track)
	})
	for i, e := range entries {
		ids[i] = e.id
	}
}

func comparator(field library.Field) func(a, b *library.Track) int {
	switch {
	case field.Kind == library.KindText:
		c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
		return func(a, b *library.Track) int {
			sa, sb := field.Text(a), field.Text(b)
			switch {
			case sa == "" && sb == "":
				return 0
			case sa == "":
				return 1
			case sb == "":
				return -1
			}
			return c.CompareString(sa, sb)
		}
	case field.Kind == library.KindFloat:
		return func(a, b *library.Track) int {
			fa, fb := field.Float(a), field.Float(b)
			if math.IsNaN(fa) || math.IsNaN(fb) {
				panic(fmt.Sprintf("view: unable to compare %s values %v and %v", field.Name, fa, fb))
			}
			return cmp.Compare(fa, fb)
		}
	case field.Kind.IsInteger():
		return func(a, b *library.Track) int {
			return cmp.Compare(field.Int(a), field.Int(b))
		}
	case field.Kind == library.KindBool:
		return func(a, b *library.Track) int {
			return cmpBool(field.Bool(a), field.Bool(b))
		}
	}
	panic(fmt.Sprintf("view: no comparator for %s field %q", field.Kind, field.Name))
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
