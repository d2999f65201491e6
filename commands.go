package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/llehouerou/reel/internal/library"
)

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		treeCommand(r),
		listCommand(r),
		columnsCommand(r),
		newListCommand(r, "new-playlist", false),
		newListCommand(r, "new-folder", true),
		renameCommand(r),
		moveCommand(r),
		deleteListCommand(r),
		folderShowCommand(r),
		addCommand(r),
		removeCommand(r),
		reorderCommand(r),
		importCommand(r),
		deleteTracksCommand(r),
		artistsCommand(r),
		historyCommand(r),
		validateCommand(r),
	}
}

// rowFlags select and order the rows an index argument refers to.
func rowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "sort by `FIELD`; repeating a field reverses it",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "show only tracks matching `TEXT`",
		},
	}
}

func treeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tree",
		Usage:  "Show playlists and folders",
		Action: r.Tree,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "expand every folder"},
		},
	}
}

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Show the tracks of a list (the last opened list by default)",
		ArgsUsage: "[LIST]",
		Action:    r.List,
		Flags: append(rowFlags(),
			&cli.BoolFlag{
				Name:  "group",
				Usage: "keep the tracks of an album together",
				Value: r.config.GroupAlbumTracks,
			},
		),
	}
}

func columnsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "columns",
		Usage:     "Set the columns shown by list; no argument restores the default",
		ArgsUsage: "[FIELD...]",
		Action:    r.Columns,
	}
}

func newListCommand(r *Runner, name string, isFolder bool) *cli.Command {
	usage := "Create a playlist"
	if isFolder {
		usage = "Create a folder"
	}
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "NAME",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.NewList(ctx, cmd, isFolder)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "parent", Aliases: []string{"p"}, Usage: "parent folder `ID`", Value: library.RootID},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}},
		},
	}
}

func renameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a playlist or folder",
		ArgsUsage: "LIST NAME",
		Action:    r.Rename,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "new description; empty clears it"},
		},
	}
}

func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "move",
		Usage:     "Move a playlist or folder to another folder",
		ArgsUsage: "LIST",
		Action:    r.Move,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "current parent `ID`", Required: true},
			&cli.StringFlag{Name: "to", Usage: "new parent `ID`", Required: true},
		},
	}
}

func deleteListCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete-list",
		Usage:     "Delete a playlist or a folder with everything below it",
		ArgsUsage: "LIST",
		Action:    r.DeleteList,
	}
}

func folderShowCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "folder-show",
		Usage:     "Expand a folder in the tree",
		ArgsUsage: "FOLDER",
		Action:    r.FolderShow,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "hide", Usage: "collapse instead"},
		},
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Append tracks to a playlist",
		ArgsUsage: "PLAYLIST TRACK...",
		Action:    r.Add,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "skip-duplicates", Usage: "leave out tracks the playlist already holds"},
		},
	}
}

func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove entries from a playlist by position",
		ArgsUsage: "PLAYLIST INDEX...",
		Action:    r.Remove,
	}
}

func reorderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "reorder",
		Usage:     "Move playlist entries as a block",
		ArgsUsage: "PLAYLIST INDEX...",
		Action:    r.Reorder,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "by", Usage: "positions to move; negative moves up", Required: true},
		},
	}
}

func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Copy music files into the library",
		ArgsUsage: "FILE...",
		Action:    r.Import,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Usage: "also append the tracks to playlist `ID`"},
		},
	}
}

func deleteTracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete-tracks",
		Usage:     "Delete tracks from the library and move their files to the trash",
		ArgsUsage: "LIST INDEX...",
		Action:    r.DeleteTracks,
		Flags:     rowFlags(),
	}
}

func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "artists",
		Usage:  "List the artists of the library",
		Action: r.Artists,
	}
}

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Record listening history",
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "Record a completed play",
				ArgsUsage: "TRACK",
				Action:    r.RecordPlay,
			},
			{
				Name:      "skip",
				Usage:     "Record a skip",
				ArgsUsage: "TRACK",
				Action:    r.RecordSkip,
			},
			{
				Name:      "playtime",
				Usage:     "Record a listening interval",
				ArgsUsage: "TRACK START_MS DURATION_MS",
				Action:    r.RecordPlayTime,
			},
		},
	}
}

func validateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "Check the library file for broken references",
		Action: r.Validate,
	}
}
