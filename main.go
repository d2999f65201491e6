package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(errmsg.Format(errmsg.OpInitialize, err))
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fatal(errmsg.Format(errmsg.OpInitialize, err))
	}

	runner := NewRunner(RunnerOpts{Config: cfg, Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatal(err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "reel",
		Usage:     "Manage a music library of playlists and folders",
		Writer:    r.output,
		ErrWriter: r.output,
		Commands:  r.register(),
	}
}

func fatal(msg string) {
	os.Stderr.WriteString(msg + "\n")
	os.Exit(1)
}
