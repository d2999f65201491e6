// Package playlists edits the tracklist tree of a library: creating,
// renaming, moving and deleting nodes, and editing playlist membership.
//
// Every operation checks its preconditions before touching the tree, so a
// failed call leaves the library unchanged.
package playlists

import (
	"fmt"
	"slices"

	"github.com/llehouerou/reel/internal/library"
)

// Playlists provides tree mutations over a library.
type Playlists struct {
	lib *library.Library
}

// New creates a new Playlists instance.
func New(lib *library.Library) *Playlists {
	return &Playlists{lib: lib}
}

// Create allocates a playlist (or a folder when isFolder is set) and appends
// it to the children of parentID, which must be a folder or the root.
// Returns the new list id.
func (p *Playlists) Create(parentID, name, description string, isFolder bool) (string, error) {
	children, err := p.lib.EditableChildren(parentID)
	if err != nil {
		return "", err
	}

	var tl library.TrackList
	if isFolder {
		tl = p.lib.NewFolder(name, description)
	} else {
		tl = p.lib.NewPlaylist(name, description)
	}
	p.lib.TrackLists.Set(tl.ListID(), tl)
	*children = append(*children, tl.ListID())
	return tl.ListID(), nil
}

// Update replaces the name and description of a playlist or folder.
// An empty description clears it.
func (p *Playlists) Update(id, name, description string) error {
	tl, err := p.lib.GetTrackList(id)
	if err != nil {
		return err
	}
	switch v := tl.(type) {
	case *library.Playlist:
		v.Name = name
		v.Description = library.StrPtr(description)
	case *library.Folder:
		v.Name = name
		v.Description = library.StrPtr(description)
	case *library.Special:
		return library.Preconditionf("cannot edit special list %s", id)
	default:
		panic(fmt.Sprintf("playlists: unknown tracklist %T", tl))
	}
	return nil
}

// AddTracks appends trackIDs to the playlist. Every id must exist in the
// catalog.
func (p *Playlists) AddTracks(id string, trackIDs []string) error {
	pl, err := p.lib.GetPlaylist(id)
	if err != nil {
		return err
	}
	for _, trackID := range trackIDs {
		if _, err := p.lib.GetTrack(trackID); err != nil {
			return err
		}
	}
	pl.Tracks = append(pl.Tracks, trackIDs...)
	return nil
}

// FilterDuplicates returns the ids of trackIDs that the playlist does not
// hold yet, in their original order.
func (p *Playlists) FilterDuplicates(id string, trackIDs []string) ([]string, error) {
	pl, err := p.lib.GetPlaylist(id)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(pl.Tracks))
	for _, trackID := range pl.Tracks {
		present[trackID] = struct{}{}
	}
	out := []string{}
	for _, trackID := range trackIDs {
		if _, ok := present[trackID]; !ok {
			out = append(out, trackID)
		}
	}
	return out, nil
}

// RemoveIndexes removes the entries at the given storage positions.
// Duplicate positions count once; any out of range position rejects the
// whole call.
func (p *Playlists) RemoveIndexes(id string, indexes []int) error {
	pl, err := p.lib.GetPlaylist(id)
	if err != nil {
		return err
	}
	positions, err := normalizePositions(indexes, len(pl.Tracks))
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(pl.Tracks)-len(positions))
	next := 0
	for i, trackID := range pl.Tracks {
		if next < len(positions) && positions[next] == i {
			next++
			continue
		}
		kept = append(kept, trackID)
	}
	pl.Tracks = kept
	return nil
}

// MoveIndices moves the entries at positions by delta as a block.
// Returns the new positions after the move. A move that would leave the
// playlist bounds is a no-op and returns positions unchanged.
func (p *Playlists) MoveIndices(id string, positions []int, delta int) ([]int, error) {
	pl, err := p.lib.GetPlaylist(id)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 || delta == 0 {
		return positions, nil
	}
	if _, err := normalizePositions(positions, len(pl.Tracks)); err != nil {
		return nil, err
	}
	if len(slices.Compact(slices.Sorted(slices.Values(positions)))) != len(positions) {
		return nil, library.Preconditionf("duplicate positions in %v", positions)
	}

	calc := newPositionCalculator(positions, len(pl.Tracks), delta)
	if !calc.canMove() {
		return positions, nil
	}
	pl.Tracks = calc.apply(pl.Tracks)
	return calc.newPositions(positions), nil
}

// Move detaches the list id from fromID and appends it to toID.
// The destination is validated before the source is touched.
func (p *Playlists) Move(id, fromID, toID string) error {
	tl, err := p.lib.GetTrackList(id)
	if err != nil {
		return err
	}
	if _, ok := tl.(*library.Special); ok {
		return library.Preconditionf("cannot move special list %s", id)
	}

	to, err := p.lib.EditableChildren(toID)
	if err != nil {
		return err
	}
	descendants, err := p.lib.TransitiveChildren(id)
	if err != nil {
		return err
	}
	if toID == id || slices.Contains(descendants, toID) {
		return library.Preconditionf("cannot move %s into its own descendant %s", id, toID)
	}

	from, err := p.lib.EditableChildren(fromID)
	if err != nil {
		return err
	}
	idx := slices.Index(*from, id)
	if idx < 0 {
		return library.Preconditionf("%s is not a child of %s", id, fromID)
	}

	*from = slices.Delete(*from, idx, idx+1)
	*to = append(*to, id)
	return nil
}

// Delete removes the list id from its parent and drops it from the tree.
// Deleting a folder drops all of its descendants. Tracks stay in the
// catalog.
func (p *Playlists) Delete(id string) error {
	tl, err := p.lib.GetTrackList(id)
	if err != nil {
		return err
	}
	if _, ok := tl.(*library.Special); ok {
		return library.Preconditionf("cannot delete special list %s", id)
	}

	parentID, ok := p.lib.ParentOf(id)
	if !ok {
		return &library.NotFoundError{Kind: "parent", ID: id}
	}
	parent, err := p.lib.EditableChildren(parentID)
	if err != nil {
		return err
	}
	descendants, err := p.lib.TransitiveChildren(id)
	if err != nil {
		return err
	}

	*parent = slices.DeleteFunc(*parent, func(child string) bool { return child == id })
	for _, childID := range descendants {
		p.lib.TrackLists.Delete(childID)
	}
	p.lib.TrackLists.Delete(id)
	return nil
}

// normalizePositions dedupes and sorts positions, rejecting any outside [0, count).
func normalizePositions(positions []int, count int) ([]int, error) {
	for _, pos := range positions {
		if pos < 0 || pos >= count {
			return nil, library.Preconditionf("index %d out of range [0, %d)", pos, count)
		}
	}
	return slices.Compact(slices.Sorted(slices.Values(positions))), nil
}
