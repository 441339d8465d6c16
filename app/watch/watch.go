package watch

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/driftlab/courier/app"
	"github.com/driftlab/courier/pkg/cli"
	"github.com/driftlab/courier/pkg/watcher"
)

var Command = &cli.Command{
	Name:  "watch",
	Usage: "watch a directory for changes",

	ArgsUsage: "[dir]",

	Flags: []cli.Flag{
		app.RecursiveFlag,
	},

	Action: func(c *cli.Context) error {
		dir := app.MustDir(c)

		return runWatch(c.Context, dir, app.Recursive(c))
	},
}

func runWatch(ctx context.Context, dir string, recursive bool) error {
	session, err := watcher.Start(dir, recursive)

	if err != nil {
		return err
	}

	defer session.Stop()

	slog.Info("watching directory", "dir", dir, "recursive", recursive)

	counts := map[watcher.Kind]int{}

	for {
		select {
		case <-ctx.Done():
			session.Stop()
			printSummary(counts)

			return nil

		case event, ok := <-session.Events():
			if !ok {
				if err := <-session.Errors(); err != nil {
					return err
				}

				return nil
			}

			counts[event.Kind]++

			cli.Infof("%-7s %s", event.Kind, event.Path)
		}
	}
}

func printSummary(counts map[watcher.Kind]int) {
	var rows [][]string

	for _, kind := range []watcher.Kind{watcher.Create, watcher.Modify, watcher.Remove, watcher.Rename} {
		rows = append(rows, []string{kind.String(), strconv.Itoa(counts[kind])})
	}

	cli.Info()
	cli.Table([]string{"Change", "Count"}, rows)
}
