package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/filter"
	"github.com/llehouerou/reel/internal/importer"
	"github.com/llehouerou/reel/internal/library"
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/tags"
	"github.com/llehouerou/reel/internal/trash"
	"github.com/llehouerou/reel/internal/view"
	"github.com/llehouerou/reel/internal/viewopts"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *config.Config
	paths     library.Paths
	logger    *log.Logger
	output    io.Writer
	trasher   view.Trasher
	extractor importer.Extractor
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *config.Config
	Logger    *log.Logger
	Output    io.Writer
	Trasher   view.Trasher
	Extractor importer.Extractor
}

// NewRunner creates a new Runner, filling unset options with the defaults.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Trasher == nil {
		opts.Trasher = trash.System{}
	}
	if opts.Extractor == nil {
		opts.Extractor = tags.Extractor{}
	}
	return &Runner{
		config:    opts.Config,
		paths:     opts.Config.Paths(),
		logger:    opts.Logger,
		output:    opts.Output,
		trasher:   opts.Trasher,
		extractor: opts.Extractor,
	}
}

// opError reports a failed operation in user-facing form and keeps the cause.
type opError struct {
	op  errmsg.Op
	err error
}

func (e *opError) Error() string { return errmsg.Format(e.op, e.err) }
func (e *opError) Unwrap() error { return e.err }

func fail(op errmsg.Op, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

func (r *Runner) load() (*library.Library, error) {
	lib, err := library.Load(r.paths, r.logger)
	if err != nil {
		return nil, fail(errmsg.OpLibraryLoad, err)
	}
	return lib, nil
}

// mutate loads the library, applies fn and saves the result when fn succeeds.
func (r *Runner) mutate(op errmsg.Op, fn func(lib *library.Library) error) error {
	lib, err := r.load()
	if err != nil {
		return err
	}
	if err := fn(lib); err != nil {
		return fail(op, err)
	}
	return r.save(lib)
}

func (r *Runner) save(lib *library.Library) error {
	return fail(errmsg.OpLibrarySave, library.Save(lib, r.paths.LibraryJSON, r.logger))
}

func (r *Runner) newView(lib *library.Library) *view.View {
	return view.New(lib,
		view.WithPager(filter.Pager{}),
		view.WithGroupAlbumTracks(r.config.GroupAlbumTracks),
		view.WithLogger(r.logger),
	)
}

func (r *Runner) viewOptions() *viewopts.Store {
	return viewopts.Load(r.paths.ViewOptionsFile(), r.logger)
}

func (r *Runner) openSession() (*state.Manager, error) {
	return state.Open(r.paths.SessionDB(), r.logger)
}

func (r *Runner) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// parseIndexes parses zero-based row positions.
func parseIndexes(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, errors.New("no index given")
	}
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", a)
		}
		out[i] = n
	}
	return out, nil
}
