package library

import (
	"encoding/json"
	"fmt"
)

// ListType tags the TrackList variant in the library file.
type ListType string

const (
	TypePlaylist ListType = "playlist"
	TypeFolder   ListType = "folder"
	TypeSpecial  ListType = "special"
)

// SpecialName names a system list. Root is the only one.
type SpecialName string

const SpecialRoot SpecialName = "Root"

// RootID is the identifier of the root Special list.
const RootID = "root"

// TrackList is one of *Playlist, *Folder or *Special. Callers switch on
// the concrete type wherever behavior differs per variant.
type TrackList interface {
	ListID() string
	Type() ListType
	isTrackList()
}

// Playlist is an ordered sequence of track ids. Duplicates are allowed.
type Playlist struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	DateCreated  int64    `json:"dateCreated"`
	ImportedFrom *string  `json:"importedFrom,omitempty"`
	OriginalID   *string  `json:"originalId,omitempty"`
	DateImported *int64   `json:"dateImported,omitempty"`
	Tracks       []string `json:"tracks"`
}

// Folder is an ordered sequence of child TrackList ids.
type Folder struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	DateCreated  int64    `json:"dateCreated"`
	ImportedFrom *string  `json:"importedFrom,omitempty"`
	OriginalID   *string  `json:"originalId,omitempty"`
	DateImported *int64   `json:"dateImported,omitempty"`
	Children     []string `json:"children"`
}

// Special is a system list. It cannot be renamed, moved or deleted.
type Special struct {
	ID          string      `json:"id"`
	Name        SpecialName `json:"name"`
	DateCreated int64       `json:"dateCreated"`
	Children    []string    `json:"children"`
}

func (p *Playlist) ListID() string { return p.ID }
func (f *Folder) ListID() string   { return f.ID }
func (s *Special) ListID() string  { return s.ID }

func (*Playlist) Type() ListType { return TypePlaylist }
func (*Folder) Type() ListType   { return TypeFolder }
func (*Special) Type() ListType  { return TypeSpecial }

func (*Playlist) isTrackList() {}
func (*Folder) isTrackList()   {}
func (*Special) isTrackList()  {}

// DisplayName returns the list name as shown to the user.
func DisplayName(tl TrackList) string {
	switch l := tl.(type) {
	case *Playlist:
		return l.Name
	case *Folder:
		return l.Name
	case *Special:
		return string(l.Name)
	}
	panic(fmt.Sprintf("library: unknown tracklist %T", tl))
}

// Children returns the child list ids of a container. ok is false for playlists.
func Children(tl TrackList) (children []string, ok bool) {
	switch l := tl.(type) {
	case *Playlist:
		return nil, false
	case *Folder:
		return l.Children, true
	case *Special:
		return l.Children, true
	}
	panic(fmt.Sprintf("library: unknown tracklist %T", tl))
}

func (p *Playlist) MarshalJSON() ([]byte, error) {
	type plain Playlist
	return json.Marshal(struct {
		Type ListType `json:"type"`
		*plain
	}{TypePlaylist, (*plain)(p)})
}

func (f *Folder) MarshalJSON() ([]byte, error) {
	type plain Folder
	return json.Marshal(struct {
		Type ListType `json:"type"`
		*plain
	}{TypeFolder, (*plain)(f)})
}

func (s *Special) MarshalJSON() ([]byte, error) {
	type plain Special
	return json.Marshal(struct {
		Type ListType `json:"type"`
		*plain
	}{TypeSpecial, (*plain)(s)})
}

// decodeTrackList decodes one tagged TrackList object.
func decodeTrackList(data []byte) (TrackList, error) {
	var head struct {
		Type ListType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var tl TrackList
	switch head.Type {
	case TypePlaylist:
		tl = &Playlist{}
	case TypeFolder:
		tl = &Folder{}
	case TypeSpecial:
		tl = &Special{}
	default:
		return nil, fmt.Errorf("unknown tracklist type %q", head.Type)
	}
	if err := json.Unmarshal(data, tl); err != nil {
		return nil, err
	}

	switch l := tl.(type) {
	case *Playlist:
		if l.Tracks == nil {
			l.Tracks = []string{}
		}
	case *Folder:
		if l.Children == nil {
			l.Children = []string{}
		}
	case *Special:
		if l.Name != SpecialRoot {
			return nil, fmt.Errorf("unknown special list %q", l.Name)
		}
		if l.Children == nil {
			l.Children = []string{}
		}
	}
	return tl, nil
}
