package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/library"
	"github.com/llehouerou/reel/internal/playlists"
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/view"
)

// requireArgs checks that at least n positional arguments were given.
func requireArgs(cmd *cli.Command, n int) error {
	if cmd.Args().Len() < n {
		return fmt.Errorf("usage: %s %s", cmd.Name, cmd.ArgsUsage)
	}
	return nil
}

// Tree prints the tracklist tree.
func (r *Runner) Tree(_ context.Context, cmd *cli.Command) error {
	lib, err := r.load()
	if err != nil {
		return err
	}
	return r.printf("%s\n", renderTree(lib, r.viewOptions(), cmd.Bool("all")))
}

// applyRows replays the sort flags in order, then applies the filter and
// computes the page.
func applyRows(v *view.View, cmd *cli.Command) error {
	for _, key := range cmd.StringSlice("sort") {
		if _, ok := library.LookupField(key); !ok && key != view.IndexKey {
			return fail(errmsg.OpListSort, fmt.Errorf("unknown field %q", key))
		}
		if err := v.Sort(key); err != nil {
			return fail(errmsg.OpListSort, err)
		}
	}
	v.SetFilter(cmd.String("filter"))
	return nil
}

// List prints the rows of a list. Without an argument it reopens the list
// and sort of the previous session. The resulting list and sort become the
// new session.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.load()
	if err != nil {
		return err
	}
	v := r.newView(lib)

	var session state.Interface
	if m, err := r.openSession(); err != nil {
		r.logger.Warn("session store unavailable", "err", err)
	} else {
		session = m
		defer func() {
			if err := session.Close(); err != nil {
				r.logger.Warn("close session store", "err", err)
			}
		}()
	}

	if listID := cmd.Args().First(); listID != "" {
		if err := v.Open(listID); err != nil {
			return fail(errmsg.OpListOpen, err)
		}
	} else if err := r.restore(ctx, session, v); err != nil {
		return err
	}

	if err := applyRows(v, cmd); err != nil {
		return err
	}
	v.SetGroupAlbumTracks(cmd.Bool("group"))

	if session != nil {
		session.SaveSession(state.Session{OpenListID: v.OpenID(), SortKey: v.SortKey(), SortDesc: v.SortDesc()})
	}

	tl, err := lib.GetTrackList(v.OpenID())
	if err != nil {
		return fail(errmsg.OpListOpen, err)
	}
	rows := v.PageTracks()
	if err := r.printf("%s %s\n%s\n", library.DisplayName(tl), idStyle.Render(tl.ListID()),
		summary(lib, rows, v.SortKey(), v.SortDesc())); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.printf("%s\n", renderTracks(lib, rows, r.viewOptions().Options().Columns))
}

// restore reopens the saved session, falling back to the root list when
// there is none or it no longer applies.
func (r *Runner) restore(ctx context.Context, session state.Interface, v *view.View) error {
	if session != nil {
		saved, err := session.GetSession(ctx)
		switch {
		case err != nil:
			r.logger.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
		case saved != nil:
			err := v.Restore(saved.OpenListID, saved.SortKey, saved.SortDesc)
			if err == nil {
				return nil
			}
			r.logger.Warn(errmsg.FormatWith(errmsg.OpSessionLoad, saved.OpenListID, err))
		}
	}
	return fail(errmsg.OpListOpen, v.Open(library.RootID))
}

// Columns sets the fields shown by List.
func (r *Runner) Columns(_ context.Context, cmd *cli.Command) error {
	columns := cmd.Args().Slice()
	for _, name := range columns {
		if _, ok := library.LookupField(name); !ok {
			names := library.FieldNames()
			slices.Sort(names)
			return fail(errmsg.OpColumnsSet, fmt.Errorf("unknown field %q, expected one of: %s",
				name, strings.Join(names, ", ")))
		}
	}
	return fail(errmsg.OpColumnsSet, r.viewOptions().SetColumns(columns))
}

// NewList creates a playlist or folder and prints its id.
func (r *Runner) NewList(_ context.Context, cmd *cli.Command, isFolder bool) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	op := errmsg.OpPlaylistCreate
	if isFolder {
		op = errmsg.OpFolderCreate
	}

	var id string
	err := r.mutate(op, func(lib *library.Library) error {
		var err error
		id, err = playlists.New(lib).Create(cmd.String("parent"), cmd.Args().First(), cmd.String("description"), isFolder)
		return err
	})
	if err != nil {
		return err
	}
	return r.printf("%s\n", id)
}

// Rename replaces the name and description of a playlist or folder.
func (r *Runner) Rename(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	return r.mutate(errmsg.OpListRename, func(lib *library.Library) error {
		return playlists.New(lib).Update(cmd.Args().Get(0), cmd.Args().Get(1), cmd.String("description"))
	})
}

// Move reparents a playlist or folder.
func (r *Runner) Move(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	return r.mutate(errmsg.OpListMove, func(lib *library.Library) error {
		return playlists.New(lib).Move(cmd.Args().First(), cmd.String("from"), cmd.String("to"))
	})
}

// DeleteList removes a playlist, or a folder with all its descendants.
// Tracks stay in the catalog.
func (r *Runner) DeleteList(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	id := cmd.Args().First()
	if err := r.mutate(errmsg.OpListDelete, func(lib *library.Library) error {
		return playlists.New(lib).Delete(id)
	}); err != nil {
		return err
	}

	if opts := r.viewOptions(); opts.FolderShown(id) {
		if err := opts.SetFolderShown(id, false); err != nil {
			r.logger.Warn(errmsg.FormatWith(errmsg.OpFolderShow, id, err))
		}
	}
	return nil
}

// FolderShow expands or collapses a folder in the tree.
func (r *Runner) FolderShow(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	lib, err := r.load()
	if err != nil {
		return err
	}
	id := cmd.Args().First()
	tl, err := lib.GetTrackList(id)
	if err != nil {
		return fail(errmsg.OpFolderShow, err)
	}
	if _, ok := tl.(*library.Folder); !ok {
		return fail(errmsg.OpFolderShow, library.Preconditionf("not a folder: %s", id))
	}
	return fail(errmsg.OpFolderShow, r.viewOptions().SetFolderShown(id, !cmd.Bool("hide")))
}
