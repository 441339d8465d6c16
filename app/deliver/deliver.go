package deliver

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/driftlab/courier/app"
	"github.com/driftlab/courier/pkg/archive"
	"github.com/driftlab/courier/pkg/cli"
	"github.com/driftlab/courier/pkg/mailer"
	"github.com/driftlab/courier/pkg/watcher"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var QuietFlag = &cli.StringFlag{
	Name:  "quiet-period",
	Usage: "settle time between a change burst and its delivery",
	Value: "5s",
}

var SubjectFlag = &cli.StringFlag{
	Name:  "subject",
	Usage: "message subject",
	Value: "Changed files",
}

var Command = &cli.Command{
	Name:  "deliver",
	Usage: "watch a directory and email changed files as a zip archive",

	ArgsUsage: "[dir]",

	Flags: append([]cli.Flag{
		app.RecursiveFlag,
		app.ToFlag,
		app.ToNameFlag,

		QuietFlag,
		SubjectFlag,
	}, app.SMTPFlags...),

	Action: func(c *cli.Context) error {
		dir := app.MustDir(c)

		m := app.MustMailer(c)
		to := app.MustTo(c)

		quiet, err := time.ParseDuration(c.String(QuietFlag.Name))

		if err != nil {
			return fmt.Errorf("invalid quiet period: %w", err)
		}

		options := deliveryOptions{
			to:     to,
			toName: c.String(app.ToNameFlag.Name),

			subject: c.String(SubjectFlag.Name),
			quiet:   quiet,
		}

		return runDeliver(c.Context, dir, app.Recursive(c), m, options)
	},
}

type deliveryOptions struct {
	to     string
	toName string

	subject string
	quiet   time.Duration
}

func runDeliver(ctx context.Context, dir string, recursive bool, m *mailer.Mailer, options deliveryOptions) error {
	session, err := watcher.Start(dir, recursive)

	if err != nil {
		return err
	}

	defer session.Stop()

	slog.Info("delivering changes", "dir", dir, "to", options.to)

	batches := make(chan []string)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(batches)

		return collect(ctx, session.Events(), session.Errors(), options.quiet, batches)
	})

	group.Go(func() error {
		for batch := range batches {
			if err := deliver(ctx, m, options, batch); err != nil {
				return err
			}
		}

		return nil
	})

	return group.Wait()
}

// collect turns the raw change stream into batches of file paths. A burst
// of changes is held back until the directory has been quiet for the
// configured period, then flushed as one deduplicated batch.
func collect(ctx context.Context, events <-chan watcher.Event, errs <-chan error, quiet time.Duration, batches chan<- []string) error {
	pending := map[string]struct{}{}

	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				if err := <-errs; err != nil {
					return err
				}

				return nil
			}

			if event.Kind == watcher.Remove {
				// deleted files cannot be delivered
				delete(pending, event.Path)
				continue
			}

			info, err := os.Stat(event.Path)

			if err != nil || info.IsDir() {
				// rename old-name half, or a directory change
				continue
			}

			pending[event.Path] = struct{}{}

			flush = time.After(quiet)

		case <-flush:
			flush = nil

			if len(pending) == 0 {
				continue
			}

			batch := make([]string, 0, len(pending))

			for path := range pending {
				batch = append(batch, path)
			}

			sort.Strings(batch)

			pending = map[string]struct{}{}

			select {
			case batches <- batch:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func deliver(ctx context.Context, m *mailer.Mailer, options deliveryOptions, files []string) error {
	output := filepath.Join(os.TempDir(), fmt.Sprintf("courier-%s.zip", uuid.NewString()))

	info, err := archive.Create(output, files)

	if err != nil {
		return err
	}

	defer os.Remove(output)

	message := mailer.Message{
		To:     options.to,
		ToName: options.toName,

		Subject:  options.subject,
		HTMLBody: htmlBody(files),
		TextBody: textBody(files),

		Attachments: []string{info.Path},
	}

	if err := m.Send(ctx, message); err != nil {
		return err
	}

	slog.Info("delivered changes", "files", info.Files, "size", info.Size, "to", options.to)

	return nil
}

func htmlBody(files []string) string {
	var b strings.Builder

	b.WriteString("<p>The following files changed:</p><ul>")

	for _, file := range files {
		b.WriteString("<li>" + html.EscapeString(filepath.Base(file)) + "</li>")
	}

	b.WriteString("</ul>")

	return b.String()
}

func textBody(files []string) string {
	var b strings.Builder

	b.WriteString("The following files changed:\n")

	for _, file := range files {
		b.WriteString("- " + filepath.Base(file) + "\n")
	}

	return b.String()
}
