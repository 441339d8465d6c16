package send

import (
	"github.com/driftlab/courier/app"
	"github.com/driftlab/courier/pkg/cli"
	"github.com/driftlab/courier/pkg/mailer"
)

var SubjectFlag = &cli.StringFlag{
	Name:  "subject",
	Usage: "message subject",
}

var BodyFlag = &cli.StringFlag{
	Name:  "body",
	Usage: "HTML message body",
}

var TextFlag = &cli.StringFlag{
	Name:  "text",
	Usage: "plain text alternative body",
}

var AttachFlag = &cli.StringSliceFlag{
	Name:    "attach",
	Aliases: []string{"a"},
	Usage:   "file to attach",
}

var TestFlag = &cli.BoolFlag{
	Name:  "test",
	Usage: "verify the SMTP connection and credentials without sending",
}

var Command = &cli.Command{
	Name:  "send",
	Usage: "send an email via SMTP",

	Flags: append([]cli.Flag{
		app.ToFlag,
		app.ToNameFlag,

		SubjectFlag,
		BodyFlag,
		TextFlag,
		AttachFlag,
		TestFlag,
	}, app.SMTPFlags...),

	Action: func(c *cli.Context) error {
		m := app.MustMailer(c)

		if c.Bool(TestFlag.Name) {
			if err := m.Test(c.Context); err != nil {
				return err
			}

			cli.Info("connection ok")
			return nil
		}

		message := mailer.Message{
			To:     app.MustTo(c),
			ToName: c.String(app.ToNameFlag.Name),

			Subject:  c.String(SubjectFlag.Name),
			HTMLBody: c.String(BodyFlag.Name),
			TextBody: c.String(TextFlag.Name),

			Attachments: c.StringSlice(AttachFlag.Name),
		}

		if err := m.Send(c.Context, message); err != nil {
			return err
		}

		cli.Infof("sent %q to %s", message.Subject, message.To)
		return nil
	},
}
