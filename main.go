package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftlab/courier/app/archive"
	"github.com/driftlab/courier/app/deliver"
	"github.com/driftlab/courier/app/send"
	"github.com/driftlab/courier/app/watch"
	"github.com/driftlab/courier/pkg/cli"

	"github.com/lmittmann/tint"
)

var version string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM)
	defer stop()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	app := initApp()

	if err := app.RunContext(ctx, os.Args); err != nil {
		cli.Fatal(err)
	}
}

func initApp() *cli.App {
	return &cli.App{
		Name:  "courier",
		Usage: "watch folders and deliver changed files",

		Suggest: true,
		Version: version,

		HideHelpCommand: true,

		Commands: []*cli.Command{
			watch.Command,
			deliver.Command,

			archive.Command,
			send.Command,
		},
	}
}
