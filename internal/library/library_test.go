package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestLibrary returns an empty library with a fixed clock and
// sequential ids ("id1", "id2", ...).
func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	l := New()
	l.SetClock(func() time.Time { return testTime })
	n := 0
	l.newID = func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
	return l
}

func addTrack(t *testing.T, l *Library, name, artist string) string {
	t.Helper()
	id := l.NewTrackID()
	l.Tracks.Set(id, &Track{
		File:      name + ".mp3",
		Size:      1000,
		Duration:  180.5,
		Bitrate:   320000,
		DateAdded: l.Now(),
		Name:      StrPtr(name),
		Artist:    StrPtr(artist),
	})
	return id
}

func attach(t *testing.T, l *Library, parentID string, tl TrackList) {
	t.Helper()
	children, err := l.EditableChildren(parentID)
	require.NoError(t, err)
	*children = append(*children, tl.ListID())
	l.TrackLists.Set(tl.ListID(), tl)
}

// sampleLibrary builds root -> [folder A -> [folder B -> [pl2]], pl1].
func sampleLibrary(t *testing.T) (l *Library, a, b, pl1, pl2 string) {
	t.Helper()
	l = newTestLibrary(t)
	t1 := addTrack(t, l, "One", "Alpha")
	t2 := addTrack(t, l, "Two", "beta")
	t3 := addTrack(t, l, "Three", "Alpha")

	fa := l.NewFolder("A", "first folder")
	attach(t, l, RootID, fa)
	fb := l.NewFolder("B", "")
	attach(t, l, fa.ID, fb)
	p1 := l.NewPlaylist("Mix", "")
	p1.Tracks = []string{t1, t2, t1}
	attach(t, l, RootID, p1)
	p2 := l.NewPlaylist("Deep", "nested")
	p2.Tracks = []string{t3, t1}
	attach(t, l, fb.ID, p2)

	require.NoError(t, l.Validate())
	return l, fa.ID, fb.ID, p1.ID, p2.ID
}

func TestNew_HasOnlyRoot(t *testing.T) {
	l := New()

	assert.Equal(t, 1, l.TrackLists.Len())
	assert.Equal(t, 0, l.Tracks.Len())
	root := l.Root()
	assert.Equal(t, RootID, root.ID)
	assert.Equal(t, SpecialRoot, root.Name)
	assert.Empty(t, root.Children)
	assert.NoError(t, l.Validate())
}

func TestGetters_NotFound(t *testing.T) {
	l := New()

	_, err := l.GetTrack("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.GetTrackList("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "tracklist", nf.Kind)
	assert.Equal(t, "missing", nf.ID)
}

func TestGetPlaylist_VariantErrors(t *testing.T) {
	l, folderID, _, plID, _ := sampleLibrary(t)

	pl, err := l.GetPlaylist(plID)
	require.NoError(t, err)
	assert.Equal(t, "Mix", pl.Name)

	_, err = l.GetPlaylist(folderID)
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Contains(t, err.Error(), "target is folder")

	_, err = l.GetPlaylist(RootID)
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Contains(t, err.Error(), "target is special")
}

func TestNewPlaylist_NotInserted(t *testing.T) {
	l := newTestLibrary(t)

	pl := l.NewPlaylist("Fresh", "")
	assert.Nil(t, pl.Description)
	assert.Empty(t, pl.Tracks)
	assert.Equal(t, testTime.UnixMilli(), pl.DateCreated)

	_, err := l.GetTrackList(pl.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	f := l.NewFolder("Box", "things")
	require.NotNil(t, f.Description)
	assert.Equal(t, "things", *f.Description)
	assert.NotEqual(t, pl.ID, f.ID)
}

func TestFreshListID_SkipsTaken(t *testing.T) {
	l := New()
	ids := []string{RootID, RootID, "fresh"}
	l.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	pl := l.NewPlaylist("x", "")
	assert.Equal(t, "fresh", pl.ID)
}

func TestTransitiveChildren(t *testing.T) {
	l, a, b, pl1, pl2 := sampleLibrary(t)

	all, err := l.TransitiveChildren(RootID)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, pl2, pl1}, all)

	sub, err := l.TransitiveChildren(a)
	require.NoError(t, err)
	assert.Equal(t, []string{b, pl2}, sub)

	none, err := l.TransitiveChildren(pl1)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = l.TransitiveChildren("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParentOf(t *testing.T) {
	l, a, b, pl1, pl2 := sampleLibrary(t)

	tests := []struct {
		id     string
		parent string
		ok     bool
	}{
		{a, RootID, true},
		{b, a, true},
		{pl1, RootID, true},
		{pl2, b, true},
		{RootID, "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			parent, ok := l.ParentOf(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.parent, parent)
		})
	}
}

func TestEditableChildren(t *testing.T) {
	l, a, _, pl1, _ := sampleLibrary(t)

	_, err := l.EditableChildren(a)
	assert.NoError(t, err)
	_, err = l.EditableChildren(RootID)
	assert.NoError(t, err)

	_, err = l.EditableChildren(pl1)
	assert.ErrorIs(t, err, ErrPrecondition)

	_, err = l.EditableChildren("missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "parent", nf.Kind)
}

func TestMemberTrackIDs(t *testing.T) {
	l, a, _, pl1, _ := sampleLibrary(t)
	ids := l.TrackIDs()

	playlist, err := l.MemberTrackIDs(pl1)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[1], ids[0]}, playlist)

	// Folder membership flattens descendants and keeps first occurrences.
	folder, err := l.MemberTrackIDs(a)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2], ids[0]}, folder)

	root, err := l.MemberTrackIDs(RootID)
	require.NoError(t, err)
	assert.Equal(t, ids, root)

	// Returned slices are copies.
	playlist[0] = "changed"
	pl, _ := l.GetPlaylist(pl1)
	assert.Equal(t, ids[0], pl.Tracks[0])
}

func TestRemoveFromAllPlaylists(t *testing.T) {
	l, _, _, pl1, pl2 := sampleLibrary(t)
	target := l.TrackIDs()[0]

	l.RemoveFromAllPlaylists(target)

	p1, _ := l.GetPlaylist(pl1)
	p2, _ := l.GetPlaylist(pl2)
	assert.NotContains(t, p1.Tracks, target)
	assert.NotContains(t, p2.Tracks, target)
	assert.Len(t, p1.Tracks, 1)
	assert.Len(t, p2.Tracks, 1)
}

func TestValidate_DetectsBrokenTrees(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(l *Library, a, b, pl1, pl2 string)
		want    string
	}{
		{
			name: "orphan",
			corrupt: func(l *Library, _, _, _, _ string) {
				l.TrackLists.Set("lost", &Playlist{ID: "lost", Tracks: []string{}})
			},
			want: "orphaned",
		},
		{
			name: "two parents",
			corrupt: func(l *Library, a, _, pl1, _ string) {
				f, _ := l.GetTrackList(a)
				f.(*Folder).Children = append(f.(*Folder).Children, pl1)
			},
			want: "two parents",
		},
		{
			name: "cycle",
			corrupt: func(l *Library, a, b, _, _ string) {
				root := l.Root()
				root.Children = []string{root.Children[1]}
				fb, _ := l.GetTrackList(b)
				fb.(*Folder).Children = append(fb.(*Folder).Children, a)
			},
			want: "cycle",
		},
		{
			name: "unknown child",
			corrupt: func(l *Library, a, _, _, _ string) {
				f, _ := l.GetTrackList(a)
				f.(*Folder).Children = append(f.(*Folder).Children, "ghost")
			},
			want: "unknown child",
		},
		{
			name: "dangling track",
			corrupt: func(l *Library, _, _, pl1, _ string) {
				pl, _ := l.GetPlaylist(pl1)
				pl.Tracks = append(pl.Tracks, "ghost")
			},
			want: "unknown track",
		},
		{
			name: "root missing",
			corrupt: func(l *Library, _, _, _, _ string) {
				l.TrackLists.Delete(RootID)
			},
			want: "root list missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, a, b, pl1, pl2 := sampleLibrary(t)
			tt.corrupt(l, a, b, pl1, pl2)
			err := l.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFileBootstraps(t *testing.T) {
	dir := t.TempDir()
	paths := NewPaths(filepath.Join(dir, "Library"), filepath.Join(dir, "Local"))

	l, err := Load(paths, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, l.TrackLists.Len())
	assert.Equal(t, Version1, l.Version)
	assert.DirExists(t, paths.TracksDir)
	assert.DirExists(t, paths.LocalDataDir)
	assert.NoFileExists(t, paths.LibraryJSON)
}

func TestLoad_UnparsableFileIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "{not json"},
		{"unknown version", `{"version": 2, "playTime": [], "tracks": {}, "trackLists": {}}`},
		{"no root", `{"version": 1, "playTime": [], "tracks": {}, "trackLists": {}}`},
		{"unknown list type", `{"version": 1, "tracks": {}, "trackLists": {"root": {"type": "smart", "id": "root"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			paths := NewPaths(dir, dir)
			require.NoError(t, os.WriteFile(paths.LibraryJSON, []byte(tt.content), 0o644))

			l, err := Load(paths, nil)
			assert.Nil(t, l)
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "parse", loadErr.Op)
		})
	}
}

func TestLoad_InvalidTreeIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(l *Library, a, b, pl1 string)
		want    string
	}{
		{
			name: "folder cycle",
			corrupt: func(l *Library, a, b, _ string) {
				fb, _ := l.GetTrackList(b)
				fb.(*Folder).Children = append(fb.(*Folder).Children, a)
			},
			want: "two parents",
		},
		{
			name: "dangling track",
			corrupt: func(l *Library, _, _, pl1 string) {
				pl, _ := l.GetPlaylist(pl1)
				pl.Tracks = append(pl.Tracks, "ghost")
			},
			want: "unknown track",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, a, b, pl1, _ := sampleLibrary(t)
			tt.corrupt(l, a, b, pl1)
			dir := t.TempDir()
			paths := NewPaths(dir, dir)
			require.NoError(t, Save(l, paths.LibraryJSON, nil))

			loaded, err := Load(paths, nil)
			assert.Nil(t, loaded)
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "validate", loadErr.Op)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_UncreatableDirIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Load(NewPaths(filepath.Join(blocker, "Library"), dir), nil)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "create directories for", loadErr.Op)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	l, a, b, pl1, pl2 := sampleLibrary(t)
	ids := l.TrackIDs()
	require.NoError(t, l.AddPlay(ids[0]))
	require.NoError(t, l.AddSkip(ids[1]))
	require.NoError(t, l.AddPlayTime(ids[0], 1000, 2500))
	tr, _ := l.GetTrack(ids[2])
	year := int16(1999)
	liked := true
	tr.Year = &year
	tr.Liked = &liked
	tr.PlaysImported = []CountObject{{Count: 3, FromDate: 10, ToDate: 20}}

	dir := t.TempDir()
	paths := NewPaths(dir, dir)
	require.NoError(t, Save(l, paths.LibraryJSON, nil))

	loaded, err := Load(paths, nil)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())

	assert.Equal(t, ids, loaded.TrackIDs())
	var listIDs []string
	for pair := loaded.TrackLists.Oldest(); pair != nil; pair = pair.Next() {
		listIDs = append(listIDs, pair.Key)
	}
	assert.Equal(t, []string{RootID, a, b, pl1, pl2}, listIDs)

	p1, err := loaded.GetPlaylist(pl1)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[1], ids[0]}, p1.Tracks)

	got, _ := loaded.GetTrack(ids[2])
	require.NotNil(t, got.Year)
	assert.Equal(t, int16(1999), *got.Year)
	assert.Nil(t, got.Rating)
	assert.Equal(t, []PlayTime{{TrackID: ids[0], Start: 1000, Duration: 2500}}, loaded.PlayTime)

	// Saving the loaded library yields the same document.
	first, err := l.Encode()
	require.NoError(t, err)
	second, err := loaded.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestEncode_TabIndented(t *testing.T) {
	data, err := New().Encode()
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, "{\n\t\"version\": 1,"), s)
	assert.Contains(t, s, "\n\t\t\"root\": {")
	assert.Contains(t, s, `"type": "special"`)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.ElementsMatch(t, []string{"version", "playTime", "tracks", "trackLists"}, keys(generic))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSave_FailureKeepsPreviousContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Library.json")
	require.NoError(t, Save(New(), path, nil))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// A read-only directory makes the temp file write fail.
	l := newTestLibrary(t)
	addTrack(t, l, "x", "y")
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	if f, err := os.Create(filepath.Join(dir, "probe")); err == nil {
		f.Close()
		t.Skip("directory permissions are not enforced for this user")
	}

	err = Save(l, path, nil)
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	paths := NewPaths(dir, dir)
	l, _, _, _, _ := sampleLibrary(t)
	require.NoError(t, Save(l, paths.LibraryJSON, nil))

	res := <-LoadAsync(t.Context(), paths, nil)
	require.NoError(t, res.Err)
	assert.Equal(t, l.TrackLists.Len(), res.Library.TrackLists.Len())
}

func TestHistory(t *testing.T) {
	l := newTestLibrary(t)
	id := addTrack(t, l, "Song", "Artist")

	require.NoError(t, l.AddPlay(id))
	require.NoError(t, l.AddPlay(id))
	require.NoError(t, l.AddSkip(id))

	tr, _ := l.GetTrack(id)
	require.NotNil(t, tr.PlayCount)
	assert.Equal(t, int32(2), *tr.PlayCount)
	assert.Equal(t, []int64{testTime.UnixMilli(), testTime.UnixMilli()}, tr.Plays)
	require.NotNil(t, tr.SkipCount)
	assert.Equal(t, int32(1), *tr.SkipCount)

	assert.ErrorIs(t, l.AddPlay("missing"), ErrNotFound)
	assert.ErrorIs(t, l.AddPlayTime("missing", 0, 1), ErrNotFound)
	assert.Empty(t, l.PlayTime)
}

func TestArtists(t *testing.T) {
	l := newTestLibrary(t)
	addTrack(t, l, "a", "beta")
	addTrack(t, l, "b", "Alpha")
	addTrack(t, l, "c", "Artist 10")
	addTrack(t, l, "d", "Artist 2")
	id := addTrack(t, l, "e", "")
	tr, _ := l.GetTrack(id)
	tr.AlbumArtist = StrPtr("Alpha")

	assert.Equal(t, []string{"Alpha", "Artist 2", "Artist 10", "beta"}, l.Artists())
}

func TestLoadError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &LoadError{Op: "read", Path: "/x", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "read /x: boom", err.Error())
}
