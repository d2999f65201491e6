package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/reel/internal/library"
	"github.com/llehouerou/reel/internal/viewopts"
)

var (
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	folderStyle = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// defaultColumns are shown when the view options name none.
var defaultColumns = []string{"name", "artist", "albumName", "duration"}

// renderTree draws the tracklist tree. Folders not marked shown in the
// view options are drawn collapsed unless all is set.
func renderTree(lib *library.Library, opts *viewopts.Store, all bool) string {
	root := lib.Root()
	t := tree.Root(folderStyle.Render(string(root.Name))).Enumerator(tree.RoundedEnumerator)
	addChildren(lib, opts, all, t, root.Children)
	return t.String()
}

func addChildren(lib *library.Library, opts *viewopts.Store, all bool, parent *tree.Tree, children []string) {
	for _, id := range children {
		tl, err := lib.GetTrackList(id)
		if err != nil {
			continue
		}
		label := library.DisplayName(tl) + " " + idStyle.Render(id)
		switch l := tl.(type) {
		case *library.Playlist:
			parent.Child(fmt.Sprintf("%s %s", label, idStyle.Render("("+strconv.Itoa(len(l.Tracks))+")")))
		case *library.Folder:
			if !all && !opts.FolderShown(id) {
				parent.Child(folderStyle.Render("+ ") + label)
				continue
			}
			sub := tree.Root(folderStyle.Render(l.Name) + " " + idStyle.Render(id))
			addChildren(lib, opts, all, sub, l.Children)
			parent.Child(sub)
		case *library.Special:
			parent.Child(label)
		}
	}
}

// renderTracks draws the rows as a table with a leading position column.
func renderTracks(lib *library.Library, ids []string, columns []string) string {
	if len(columns) == 0 {
		columns = defaultColumns
	}
	fields := make([]library.Field, 0, len(columns))
	headers := []string{"#"}
	for _, name := range columns {
		if f, ok := library.LookupField(name); ok {
			fields = append(fields, f)
			headers = append(headers, name)
		}
	}

	rows := make([][]string, 0, len(ids))
	for i, id := range ids {
		row := []string{strconv.Itoa(i)}
		t, err := lib.GetTrack(id)
		for _, f := range fields {
			if err != nil {
				row = append(row, "")
				continue
			}
			row = append(row, formatField(f, t))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// formatField renders one field for display. Absent values render empty.
func formatField(f library.Field, t *library.Track) string {
	switch f.Kind {
	case library.KindText:
		if f.Name == "name" {
			return t.DisplayName()
		}
		return f.Text(t)
	case library.KindFloat:
		v := f.Float(t)
		switch {
		case v == 0:
			return ""
		case f.Name == "duration":
			return formatDuration(v)
		case f.Name == "bitrate":
			return strconv.Itoa(int(v/1000)) + " kbps"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case library.KindBool:
		if f.Bool(t) {
			return "yes"
		}
		return ""
	}

	v := f.Int(t)
	switch {
	case v == 0:
		return ""
	case f.Name == "size":
		return humanize.IBytes(uint64(v))
	case strings.HasPrefix(f.Name, "date"):
		return humanize.Time(time.UnixMilli(v))
	}
	return strconv.FormatInt(v, 10)
}

// formatDuration renders seconds as m:ss or h:mm:ss.
func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// summary describes the listed rows: count, total duration and size.
func summary(lib *library.Library, ids []string, sortKey string, desc bool) string {
	var seconds float64
	var size int64
	for _, id := range ids {
		if t, err := lib.GetTrack(id); err == nil {
			seconds += t.Duration
			size += t.Size
		}
	}
	dir := "asc"
	if desc {
		dir = "desc"
	}
	return fmt.Sprintf("%d tracks, %s, %s, sorted by %s %s",
		len(ids), formatDuration(seconds), humanize.IBytes(uint64(max(size, 0))), sortKey, dir)
}
