package app

import (
	"errors"

	"github.com/driftlab/courier/pkg/cli"
	"github.com/driftlab/courier/pkg/mailer"
)

var HostFlag = &cli.StringFlag{
	Name:    "host",
	Usage:   "SMTP server host",
	EnvVars: []string{"COURIER_SMTP_HOST"},
}

var PortFlag = &cli.IntFlag{
	Name:    "port",
	Usage:   "SMTP server port",
	EnvVars: []string{"COURIER_SMTP_PORT"},
}

var SecureFlag = &cli.BoolFlag{
	Name:    "secure",
	Usage:   "use implicit TLS instead of STARTTLS",
	EnvVars: []string{"COURIER_SMTP_SECURE"},
}

var UsernameFlag = &cli.StringFlag{
	Name:    "username",
	Usage:   "SMTP username",
	EnvVars: []string{"COURIER_SMTP_USERNAME"},
}

var PasswordFlag = &cli.StringFlag{
	Name:    "password",
	Usage:   "SMTP password",
	EnvVars: []string{"COURIER_SMTP_PASSWORD"},
}

var FromFlag = &cli.StringFlag{
	Name:    "from",
	Usage:   "sender address",
	EnvVars: []string{"COURIER_FROM"},
}

var FromNameFlag = &cli.StringFlag{
	Name:    "from-name",
	Usage:   "sender display name",
	EnvVars: []string{"COURIER_FROM_NAME"},
}

var ToFlag = &cli.StringFlag{
	Name:    "to",
	Usage:   "recipient address",
	EnvVars: []string{"COURIER_TO"},
}

var ToNameFlag = &cli.StringFlag{
	Name:    "to-name",
	Usage:   "recipient display name",
	EnvVars: []string{"COURIER_TO_NAME"},
}

var SMTPFlags = []cli.Flag{
	HostFlag,
	PortFlag,
	SecureFlag,
	UsernameFlag,
	PasswordFlag,
	FromFlag,
	FromNameFlag,
}

func Mailer(c *cli.Context) (*mailer.Mailer, error) {
	password := c.String(PasswordFlag.Name)

	if password == "" && c.String(UsernameFlag.Name) != "" {
		password = cli.MustSecret("SMTP password")
	}

	return mailer.New(mailer.Config{
		Host:   c.String(HostFlag.Name),
		Port:   c.Int(PortFlag.Name),
		Secure: c.Bool(SecureFlag.Name),

		Username: c.String(UsernameFlag.Name),
		Password: password,

		From:     c.String(FromFlag.Name),
		FromName: c.String(FromNameFlag.Name),
	})
}

func MustMailer(c *cli.Context) *mailer.Mailer {
	m, err := Mailer(c)

	if err != nil {
		cli.Fatal(err)
	}

	return m
}

func To(c *cli.Context) (string, error) {
	to := c.String(ToFlag.Name)

	if to == "" {
		return "", errors.New("recipient missing")
	}

	return to, nil
}

func MustTo(c *cli.Context) string {
	to, err := To(c)

	if err != nil {
		cli.Fatal(err)
	}

	return to
}
