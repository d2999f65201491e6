// Package view derives the rows shown for the open tracklist: its member
// ids, their order under the active sort, and an optional page overlay
// computed by a Pager.
//
// Every operation works on a copy of the view state and commits it only
// on success, so a failed call leaves the view unchanged.
package view

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/reel/internal/library"
	"github.com/llehouerou/reel/internal/playlists"
)

// Pager narrows an ordered id sequence to the visible rows. It must keep
// the relative order of the ids it returns.
type Pager interface {
	Page(lib *library.Library, ids []string, filter string, groupAlbumTracks bool) []string
}

type state struct {
	openID   string
	trackIDs []string
	pageIDs  []string // nil when no page overlay has been computed
	filter   string
	sortKey  string
	sortDesc bool
}

func (s state) clone() state {
	s.trackIDs = slices.Clone(s.trackIDs)
	s.pageIDs = slices.Clone(s.pageIDs)
	return s
}

// View is the open list state over a library. It is not safe for
// concurrent use.
type View struct {
	lib              *library.Library
	edits            *playlists.Playlists
	pager            Pager
	groupAlbumTracks bool
	logger           *log.Logger

	st state
}

// Option configures a View.
type Option func(*View)

// WithPager sets the collaborator computing the page overlay.
func WithPager(p Pager) Option {
	return func(v *View) { v.pager = p }
}

// WithGroupAlbumTracks sets the initial album grouping flag.
func WithGroupAlbumTracks(group bool) Option {
	return func(v *View) { v.groupAlbumTracks = group }
}

// WithLogger sets the logger used for timings.
func WithLogger(l *log.Logger) Option {
	return func(v *View) { v.logger = l }
}

// New returns a view with no open list.
func New(lib *library.Library, opts ...Option) *View {
	v := &View{
		lib:              lib,
		edits:            playlists.New(lib),
		groupAlbumTracks: true,
		logger:           log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open switches to listID, loads its membership, clears the filter and
// drops the page overlay, and applies the default sort: newest added
// first for special lists, stored order for playlists and folders.
func (v *View) Open(listID string) error {
	tl, err := v.lib.GetTrackList(listID)
	if err != nil {
		return err
	}
	ids, err := v.lib.MemberTrackIDs(listID)
	if err != nil {
		return err
	}

	st := state{openID: listID, trackIDs: ids}
	switch tl.(type) {
	case *library.Special:
		if err := v.sort(&st, "dateAdded"); err != nil {
			return err
		}
	default:
		st.sortKey = IndexKey
		st.sortDesc = true
	}
	v.st = st
	return nil
}

// Sort applies key to the open list and recomputes the page overlay if
// one is shown.
func (v *View) Sort(key string) error {
	st := v.st.clone()
	if err := v.sort(&st, key); err != nil {
		return err
	}
	if st.pageIDs != nil {
		v.page(&st)
	}
	v.st = st
	return nil
}

func (v *View) sort(st *state, key string) error {
	start := time.Now()
	if err := applySort(v.lib, st, key); err != nil {
		return err
	}
	v.logger.Debug("sort", "key", key, "desc", st.sortDesc, "tracks", len(st.trackIDs), "elapsed", time.Since(start))
	return nil
}

// Refresh recomputes the page overlay from the open list. Without a Pager
// it is a no-op.
func (v *View) Refresh() {
	if v.pager == nil {
		return
	}
	st := v.st.clone()
	v.page(&st)
	v.st = st
}

// SetFilter replaces the filter text and refreshes the page.
func (v *View) SetFilter(filter string) {
	st := v.st.clone()
	st.filter = filter
	v.page(&st)
	v.st = st
}

// SetGroupAlbumTracks toggles album grouping and refreshes the page.
// Grouping never applies under the index sort.
func (v *View) SetGroupAlbumTracks(group bool) {
	v.groupAlbumTracks = group
	v.Refresh()
}

func (v *View) page(st *state) {
	if v.pager == nil {
		st.pageIDs = nil
		return
	}
	start := time.Now()
	// Index order shows the stored order as is, so row positions stay
	// storage positions for the edit operations.
	group := v.groupAlbumTracks && st.sortKey != IndexKey
	st.pageIDs = v.pager.Page(v.lib, slices.Clone(st.trackIDs), st.filter, group)
	v.logger.Debug("page", "filter", st.filter, "rows", len(st.pageIDs), "elapsed", time.Since(start))
}

// PageTracks returns the page overlay if one has been computed, otherwise
// the whole open list.
func (v *View) PageTracks() []string {
	if v.st.pageIDs != nil {
		return slices.Clone(v.st.pageIDs)
	}
	return slices.Clone(v.st.trackIDs)
}

// OpenID returns the open list id, "" before the first Open.
func (v *View) OpenID() string { return v.st.openID }

// TrackIDs returns the open list membership in the current sort order,
// before filtering.
func (v *View) TrackIDs() []string { return slices.Clone(v.st.trackIDs) }

// SortKey returns the active sort key.
func (v *View) SortKey() string { return v.st.sortKey }

// SortDesc returns the active sort direction.
func (v *View) SortDesc() bool { return v.st.sortDesc }

// Filter returns the active filter text.
func (v *View) Filter() string { return v.st.filter }

// GroupAlbumTracks returns the album grouping flag.
func (v *View) GroupAlbumTracks() bool { return v.groupAlbumTracks }

// Restore reopens listID and replays a saved sort. Unknown sort keys are
// ignored and leave the default sort in place.
func (v *View) Restore(listID, sortKey string, sortDesc bool) error {
	if err := v.Open(listID); err != nil {
		return err
	}
	if _, known := library.LookupField(sortKey); !known && sortKey != IndexKey {
		return nil
	}
	if sortKey != v.st.sortKey {
		if err := v.Sort(sortKey); err != nil {
			return err
		}
	}
	if sortKey == v.st.sortKey && sortDesc != v.st.sortDesc {
		return v.Sort(sortKey)
	}
	return nil
}
