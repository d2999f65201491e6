package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/importer"
	"github.com/llehouerou/reel/internal/library"
	"github.com/llehouerou/reel/internal/playlists"
)

// Add appends catalog tracks to a playlist.
func (r *Runner) Add(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	args := cmd.Args().Slice()
	id, trackIDs := args[0], args[1:]

	return r.mutate(errmsg.OpPlaylistAddTrack, func(lib *library.Library) error {
		edits := playlists.New(lib)
		if cmd.Bool("skip-duplicates") {
			var err error
			if trackIDs, err = edits.FilterDuplicates(id, trackIDs); err != nil {
				return err
			}
		}
		return edits.AddTracks(id, trackIDs)
	})
}

// Remove deletes playlist entries by their stored position.
func (r *Runner) Remove(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	indexes, err := parseIndexes(cmd.Args().Tail())
	if err != nil {
		return err
	}
	return r.mutate(errmsg.OpPlaylistRemove, func(lib *library.Library) error {
		v := r.newView(lib)
		if err := v.Open(cmd.Args().First()); err != nil {
			return err
		}
		return v.RemoveFromOpen(indexes)
	})
}

// Reorder moves playlist entries as a block and prints their new positions.
func (r *Runner) Reorder(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	indexes, err := parseIndexes(cmd.Args().Tail())
	if err != nil {
		return err
	}

	var moved []int
	err = r.mutate(errmsg.OpPlaylistReorder, func(lib *library.Library) error {
		v := r.newView(lib)
		if err := v.Open(cmd.Args().First()); err != nil {
			return err
		}
		var err error
		moved, err = v.MoveTracks(indexes, cmd.Int("by"))
		return err
	})
	if err != nil {
		return err
	}
	positions := make([]string, len(moved))
	for i, p := range moved {
		positions[i] = strconv.Itoa(p)
	}
	return r.printf("%s\n", strings.Join(positions, " "))
}

// Import copies files into the tracks directory and prints the new ids.
// Each file is imported independently; the library is saved when at least
// one succeeds and the failures are reported together.
func (r *Runner) Import(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	lib, err := r.load()
	if err != nil {
		return err
	}
	target := cmd.String("to")
	if target != "" {
		if _, err := lib.GetPlaylist(target); err != nil {
			return fail(errmsg.OpPlaylistAddTrack, err)
		}
	}

	im := importer.New(lib, r.paths.TracksDir, r.extractor, r.logger)
	var imported []string
	var errs []error
	for _, path := range cmd.Args().Slice() {
		id, err := im.Import(path)
		if err != nil {
			errs = append(errs, errors.New(errmsg.FormatWith(errmsg.OpImportFile, path, err)))
			continue
		}
		imported = append(imported, id)
		if err := r.printf("%s\n", id); err != nil {
			return err
		}
	}

	if len(imported) == 0 {
		return errors.Join(errs...)
	}
	if target != "" {
		if err := playlists.New(lib).AddTracks(target, imported); err != nil {
			errs = append(errs, fail(errmsg.OpPlaylistAddTrack, err))
		}
	}
	if err := r.save(lib); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DeleteTracks removes tracks by their row position in a list, as shown
// by List with the same sort and filter flags, and trashes their files.
// Tracks deleted before a failure stay deleted and are saved.
func (r *Runner) DeleteTracks(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	indexes, err := parseIndexes(cmd.Args().Tail())
	if err != nil {
		return err
	}
	lib, err := r.load()
	if err != nil {
		return err
	}

	v := r.newView(lib)
	if err := v.Open(cmd.Args().First()); err != nil {
		return fail(errmsg.OpListOpen, err)
	}
	if err := applyRows(v, cmd); err != nil {
		return err
	}

	before := lib.Tracks.Len()
	deleteErr := fail(errmsg.OpTrackDelete, v.DeleteTracks(indexes, r.paths.TracksDir, r.trasher))
	if lib.Tracks.Len() == before {
		return deleteErr
	}
	if err := r.save(lib); err != nil {
		return errors.Join(deleteErr, err)
	}
	if deleteErr != nil {
		return deleteErr
	}
	return r.printf("deleted %d tracks\n", before-lib.Tracks.Len())
}

// Artists prints the distinct artist names of the catalog.
func (r *Runner) Artists(_ context.Context, _ *cli.Command) error {
	lib, err := r.load()
	if err != nil {
		return err
	}
	for _, name := range lib.Artists() {
		if err := r.printf("%s\n", name); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlay appends a play to the history of a track.
func (r *Runner) RecordPlay(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	return r.mutate(errmsg.OpHistoryRecord, func(lib *library.Library) error {
		return lib.AddPlay(cmd.Args().First())
	})
}

// RecordSkip appends a skip to the history of a track.
func (r *Runner) RecordSkip(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}
	return r.mutate(errmsg.OpHistoryRecord, func(lib *library.Library) error {
		return lib.AddSkip(cmd.Args().First())
	})
}

// RecordPlayTime appends a listening interval to the library play time.
func (r *Runner) RecordPlayTime(_ context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 3); err != nil {
		return err
	}
	var ms [2]int64
	for i, arg := range cmd.Args().Slice()[1:3] {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid milliseconds %q", arg)
		}
		ms[i] = n
	}
	return r.mutate(errmsg.OpHistoryRecord, func(lib *library.Library) error {
		return lib.AddPlayTime(cmd.Args().First(), ms[0], ms[1])
	})
}

// Validate checks the loaded library for broken references.
func (r *Runner) Validate(_ context.Context, _ *cli.Command) error {
	lib, err := r.load()
	if err != nil {
		return err
	}
	if err := lib.Validate(); err != nil {
		return fail(errmsg.OpLibraryValidate, err)
	}
	return r.printf("library is valid: %d tracks, %d lists\n", lib.Tracks.Len(), lib.TrackLists.Len())
}
