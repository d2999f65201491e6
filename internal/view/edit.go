package view

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/llehouerou/reel/internal/library"
)

// Trasher moves a file to a recoverable location. It never hard-deletes.
type Trasher interface {
	Trash(path string) error
}

// editableOpenPlaylist returns the open playlist if its displayed order is
// its stored order: natural index sort and no filter.
func (v *View) editableOpenPlaylist() (*library.Playlist, error) {
	tl, err := v.lib.GetTrackList(v.st.openID)
	if err != nil {
		return nil, err
	}
	var pl *library.Playlist
	switch l := tl.(type) {
	case *library.Playlist:
		pl = l
	case *library.Folder:
		return nil, library.Preconditionf("cannot edit tracks of folder %s", l.ID)
	case *library.Special:
		return nil, library.Preconditionf("cannot edit tracks of special list %s", l.ID)
	default:
		panic(fmt.Sprintf("view: unknown tracklist %T", tl))
	}
	if v.st.sortKey != IndexKey || !v.st.sortDesc {
		return nil, library.Preconditionf("cannot edit tracks while a custom sort is active")
	}
	if v.st.filter != "" {
		return nil, library.Preconditionf("cannot edit tracks while a filter is active")
	}
	return pl, nil
}

// reload replaces the open list membership with the playlist's stored
// order and refreshes the page.
func (v *View) reload(pl *library.Playlist) {
	st := v.st.clone()
	st.trackIDs = slices.Clone(pl.Tracks)
	v.page(&st)
	v.st = st
}

// RemoveFromOpen removes the entries at the given displayed positions from
// the open playlist. It is rejected unless the view shows the stored order
// unfiltered.
func (v *View) RemoveFromOpen(indexes []int) error {
	pl, err := v.editableOpenPlaylist()
	if err != nil {
		return err
	}
	if err := v.edits.RemoveIndexes(pl.ID, indexes); err != nil {
		return err
	}
	v.reload(pl)
	return nil
}

// MoveTracks moves the entries at the given displayed positions of the
// open playlist by delta as a block and returns their new positions. Same
// preconditions as RemoveFromOpen.
func (v *View) MoveTracks(indexes []int, delta int) ([]int, error) {
	pl, err := v.editableOpenPlaylist()
	if err != nil {
		return nil, err
	}
	moved, err := v.edits.MoveIndices(pl.ID, indexes, delta)
	if err != nil {
		return nil, err
	}
	v.reload(pl)
	return moved, nil
}

// DeleteTracks permanently removes the tracks at the given page positions:
// from every playlist, from the catalog, then their files go to the trash.
//
// Every file must exist before anything is removed. Catalog removal of a
// track precedes the trash of its file, so a trash failure never leaves a
// catalog entry pointing at a trashed file; the failure is returned and
// the tracks processed so far stay deleted.
func (v *View) DeleteTracks(indexes []int, tracksDir string, trasher Trasher) error {
	page := v.PageTracks()
	var ids []string
	for _, pos := range slices.Compact(slices.Sorted(slices.Values(indexes))) {
		if pos < 0 || pos >= len(page) {
			return library.Preconditionf("index %d out of range [0, %d)", pos, len(page))
		}
		if !slices.Contains(ids, page[pos]) {
			ids = append(ids, page[pos])
		}
	}

	files := make([]string, len(ids))
	for i, id := range ids {
		t, err := v.lib.GetTrack(id)
		if err != nil {
			return err
		}
		files[i] = filepath.Join(tracksDir, t.File)
		if _, err := os.Stat(files[i]); errors.Is(err, fs.ErrNotExist) {
			return library.Preconditionf("file does not exist: %s", files[i])
		} else if err != nil {
			return err
		}
	}

	for i, id := range ids {
		v.lib.RemoveFromAllPlaylists(id)
		v.lib.Tracks.Delete(id)
		if err := trasher.Trash(files[i]); err != nil {
			v.forget(ids[:i+1])
			return fmt.Errorf("trash %s: %w", files[i], err)
		}
		v.logger.Info("deleted track", "id", id, "file", files[i])
	}
	v.forget(ids)
	return nil
}

// forget drops deleted ids from the open list and the page, keeping order.
func (v *View) forget(ids []string) {
	gone := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}
	deleted := func(id string) bool {
		_, ok := gone[id]
		return ok
	}
	st := v.st.clone()
	st.trackIDs = slices.DeleteFunc(st.trackIDs, deleted)
	if st.pageIDs != nil {
		st.pageIDs = slices.DeleteFunc(st.pageIDs, deleted)
	}
	v.st = st
}
