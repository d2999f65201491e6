package library

import (
	"errors"
	"fmt"
	"slices"
)

// TransitiveChildren returns every descendant list id of id, depth first.
// Playlists have no descendants.
func (l *Library) TransitiveChildren(id string) ([]string, error) {
	tl, err := l.GetTrackList(id)
	if err != nil {
		return nil, err
	}
	direct, ok := Children(tl)
	if !ok {
		return nil, nil
	}

	var all []string
	for _, childID := range direct {
		all = append(all, childID)
		child, err := l.GetTrackList(childID)
		if err != nil {
			return nil, err
		}
		if _, container := Children(child); !container {
			continue
		}
		descendants, err := l.TransitiveChildren(childID)
		if err != nil {
			return nil, err
		}
		all = append(all, descendants...)
	}
	return all, nil
}

// ParentOf scans the tree for the container holding id.
func (l *Library) ParentOf(id string) (string, bool) {
	for pair := l.TrackLists.Oldest(); pair != nil; pair = pair.Next() {
		children, ok := Children(pair.Value)
		if ok && slices.Contains(children, id) {
			return pair.Key, true
		}
	}
	return "", false
}

// EditableChildren returns a pointer to the child sequence of a container
// the user may edit: any folder, or the root.
func (l *Library) EditableChildren(id string) (*[]string, error) {
	tl, ok := l.TrackLists.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: "parent", ID: id}
	}
	switch v := tl.(type) {
	case *Folder:
		return &v.Children, nil
	case *Special:
		if v.Name == SpecialRoot {
			return &v.Children, nil
		}
		return nil, Preconditionf("%s is not an editable container", id)
	case *Playlist:
		return nil, Preconditionf("%s is a playlist, not a folder", id)
	}
	panic(fmt.Sprintf("library: unknown tracklist %T", tl))
}

// MemberTrackIDs returns the track membership of a list: the stored order
// of a playlist, the tracks of every descendant playlist of a folder (first
// occurrence wins), or the whole catalog for the root.
func (l *Library) MemberTrackIDs(id string) ([]string, error) {
	tl, err := l.GetTrackList(id)
	if err != nil {
		return nil, err
	}
	switch v := tl.(type) {
	case *Playlist:
		return slices.Clone(v.Tracks), nil
	case *Special:
		return l.TrackIDs(), nil
	case *Folder:
		descendants, err := l.TransitiveChildren(v.ID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{})
		ids := []string{}
		for _, childID := range descendants {
			child, _ := l.TrackLists.Get(childID)
			pl, ok := child.(*Playlist)
			if !ok {
				continue
			}
			for _, trackID := range pl.Tracks {
				if _, dup := seen[trackID]; dup {
					continue
				}
				seen[trackID] = struct{}{}
				ids = append(ids, trackID)
			}
		}
		return ids, nil
	}
	panic(fmt.Sprintf("library: unknown tracklist %T", tl))
}

// RemoveFromAllPlaylists drops every occurrence of trackID from every playlist.
func (l *Library) RemoveFromAllPlaylists(trackID string) {
	for pair := l.TrackLists.Oldest(); pair != nil; pair = pair.Next() {
		pl, ok := pair.Value.(*Playlist)
		if !ok {
			continue
		}
		pl.Tracks = slices.DeleteFunc(pl.Tracks, func(id string) bool { return id == trackID })
	}
}

// Validate checks the structural invariants of the tree: one special root,
// every other list held by exactly one container, no cycles, and every
// playlist entry present in the catalog.
func (l *Library) Validate() error {
	root, ok := l.TrackLists.Get(RootID)
	if !ok {
		return errors.New("root list missing")
	}
	if _, ok := root.(*Special); !ok {
		return fmt.Errorf("root list is %s", root.Type())
	}

	parents := make(map[string]string, l.TrackLists.Len())
	for pair := l.TrackLists.Oldest(); pair != nil; pair = pair.Next() {
		if s, ok := pair.Value.(*Special); ok && pair.Key != RootID {
			return fmt.Errorf("unexpected special list %s (%s)", pair.Key, s.Name)
		}
		children, ok := Children(pair.Value)
		if !ok {
			continue
		}
		for _, childID := range children {
			if childID == RootID {
				return fmt.Errorf("root is a child of %s", pair.Key)
			}
			if _, exists := l.TrackLists.Get(childID); !exists {
				return fmt.Errorf("%s lists unknown child %s", pair.Key, childID)
			}
			if prev, dup := parents[childID]; dup {
				return fmt.Errorf("%s has two parents: %s and %s", childID, prev, pair.Key)
			}
			parents[childID] = pair.Key
		}
	}

	for pair := l.TrackLists.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == RootID {
			continue
		}
		if _, held := parents[pair.Key]; !held {
			return fmt.Errorf("%s is orphaned", pair.Key)
		}
	}

	// Every list reaches the root through its single parent chain, so
	// a walk longer than the tree size means a cycle.
	for id := range parents {
		cur := id
		for steps := 0; cur != RootID; steps++ {
			if steps > len(parents) {
				return fmt.Errorf("cycle through %s", id)
			}
			cur = parents[cur]
		}
	}

	for pair := l.TrackLists.Oldest(); pair != nil; pair = pair.Next() {
		pl, ok := pair.Value.(*Playlist)
		if !ok {
			continue
		}
		for _, trackID := range pl.Tracks {
			if _, ok := l.Tracks.Get(trackID); !ok {
				return fmt.Errorf("playlist %s references unknown track %s", pl.ID, trackID)
			}
		}
	}
	return nil
}
