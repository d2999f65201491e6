// Package library holds the track catalog and the tracklist tree, and
// persists both to a single versioned JSON document.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Version tags the shape of the library file.
type Version int

const Version1 Version = 1

// PlayTime records one listening session: track id, start and duration in
// milliseconds. It is encoded as a three element array.
type PlayTime struct {
	TrackID  string
	Start    int64
	Duration int64
}

func (p PlayTime) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.TrackID, p.Start, p.Duration})
}

func (p *PlayTime) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("play time entry: want 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.TrackID); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &p.Start); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &p.Duration)
}

// Library owns the catalog and the tree. Both maps preserve insertion order.
// A Library is not safe for concurrent use; the embedding host serializes calls.
type Library struct {
	Version    Version
	PlayTime   []PlayTime
	Tracks     *orderedmap.OrderedMap[string, *Track]
	TrackLists *orderedmap.OrderedMap[string, TrackList]

	now   func() time.Time
	newID func() string
}

// New returns a library holding only the root list.
func New() *Library {
	l := empty()
	l.TrackLists.Set(RootID, &Special{
		ID:          RootID,
		Name:        SpecialRoot,
		DateCreated: l.Now(),
		Children:    []string{},
	})
	return l
}

func empty() *Library {
	return &Library{
		Version:    Version1,
		PlayTime:   []PlayTime{},
		Tracks:     orderedmap.New[string, *Track](),
		TrackLists: orderedmap.New[string, TrackList](),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Now returns the current time in milliseconds, the unit of every timestamp
// in the library.
func (l *Library) Now() int64 {
	return l.now().UnixMilli()
}

// SetClock replaces the time source. Used by tests.
func (l *Library) SetClock(now func() time.Time) {
	l.now = now
}

// GetTrack returns the catalog entry for id.
func (l *Library) GetTrack(id string) (*Track, error) {
	t, ok := l.Tracks.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: "track", ID: id}
	}
	return t, nil
}

// GetTrackList returns the tree node for id. The returned value is the
// stored node; edits through it are edits to the library.
func (l *Library) GetTrackList(id string) (TrackList, error) {
	tl, ok := l.TrackLists.Get(id)
	if !ok {
		return nil, &NotFoundError{Kind: "tracklist", ID: id}
	}
	return tl, nil
}

// GetPlaylist returns id as a playlist, rejecting folders and special lists
// with a variant specific error.
func (l *Library) GetPlaylist(id string) (*Playlist, error) {
	tl, err := l.GetTrackList(id)
	if err != nil {
		return nil, err
	}
	switch v := tl.(type) {
	case *Playlist:
		return v, nil
	case *Folder:
		return nil, Preconditionf("target is folder: %s", id)
	case *Special:
		return nil, Preconditionf("target is special: %s", id)
	}
	panic(fmt.Sprintf("library: unknown tracklist %T", tl))
}

// Root returns the root list.
func (l *Library) Root() *Special {
	tl, ok := l.TrackLists.Get(RootID)
	if !ok {
		panic("library: root list missing")
	}
	root, ok := tl.(*Special)
	if !ok {
		panic("library: root list is not special")
	}
	return root
}

func (l *Library) freshListID() string {
	for {
		id := l.newID()
		if _, taken := l.TrackLists.Get(id); !taken {
			return id
		}
	}
}

// NewTrackID allocates an id not yet used by the catalog.
func (l *Library) NewTrackID() string {
	for {
		id := l.newID()
		if _, taken := l.Tracks.Get(id); !taken {
			return id
		}
	}
}

// NewPlaylist allocates an empty playlist with a fresh id. It is not
// inserted into the tree.
func (l *Library) NewPlaylist(name, description string) *Playlist {
	return &Playlist{
		ID:          l.freshListID(),
		Name:        name,
		Description: StrPtr(description),
		DateCreated: l.Now(),
		Tracks:      []string{},
	}
}

// NewFolder allocates an empty folder with a fresh id. It is not inserted
// into the tree.
func (l *Library) NewFolder(name, description string) *Folder {
	return &Folder{
		ID:          l.freshListID(),
		Name:        name,
		Description: StrPtr(description),
		DateCreated: l.Now(),
		Children:    []string{},
	}
}

// TrackIDs returns every catalog id in insertion order.
func (l *Library) TrackIDs() []string {
	ids := make([]string, 0, l.Tracks.Len())
	for pair := l.Tracks.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

type document struct {
	Version    Version                                   `json:"version"`
	PlayTime   []PlayTime                                `json:"playTime"`
	Tracks     *orderedmap.OrderedMap[string, *Track]    `json:"tracks"`
	TrackLists *orderedmap.OrderedMap[string, TrackList] `json:"trackLists"`
}

type rawDocument struct {
	Version    Version                                         `json:"version"`
	PlayTime   []PlayTime                                      `json:"playTime"`
	Tracks     *orderedmap.OrderedMap[string, *Track]          `json:"tracks"`
	TrackLists *orderedmap.OrderedMap[string, json.RawMessage] `json:"trackLists"`
}

func (l *Library) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		Version:    l.Version,
		PlayTime:   l.PlayTime,
		Tracks:     l.Tracks,
		TrackLists: l.TrackLists,
	})
}

func (l *Library) UnmarshalJSON(data []byte) error {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Version != Version1 {
		return fmt.Errorf("unsupported library version %d", raw.Version)
	}

	decoded := empty()
	if raw.PlayTime != nil {
		decoded.PlayTime = raw.PlayTime
	}
	if raw.Tracks != nil {
		decoded.Tracks = raw.Tracks
	}
	if raw.TrackLists != nil {
		for pair := raw.TrackLists.Oldest(); pair != nil; pair = pair.Next() {
			tl, err := decodeTrackList(pair.Value)
			if err != nil {
				return fmt.Errorf("tracklist %s: %w", pair.Key, err)
			}
			if tl.ListID() != pair.Key {
				return fmt.Errorf("tracklist %s: id mismatch %q", pair.Key, tl.ListID())
			}
			decoded.TrackLists.Set(pair.Key, tl)
		}
	}

	root, ok := decoded.TrackLists.Get(RootID)
	if !ok {
		return errors.New("root list missing")
	}
	if _, ok := root.(*Special); !ok {
		return fmt.Errorf("root list is %s, not special", root.Type())
	}

	*l = *decoded
	return nil
}
