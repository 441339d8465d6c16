package mailer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

type Config struct {
	Host string
	Port int

	// Secure selects implicit TLS (typically port 465) instead of
	// STARTTLS (typically port 587)
	Secure bool

	Username string
	Password string

	From     string
	FromName string
}

type Message struct {
	To     string
	ToName string

	Subject  string
	HTMLBody string
	TextBody string

	Attachments []string
}

type Mailer struct {
	config Config
}

func New(config Config) (*Mailer, error) {
	if config.Host == "" {
		return nil, errors.New("smtp host missing")
	}

	if config.From == "" {
		return nil, errors.New("sender address missing")
	}

	if config.Port == 0 {
		if config.Secure {
			config.Port = 465
		} else {
			config.Port = 587
		}
	}

	return &Mailer{
		config: config,
	}, nil
}

// Send composes and delivers a message.
func (m *Mailer) Send(ctx context.Context, message Message) error {
	msg, err := m.compose(message)

	if err != nil {
		return err
	}

	client, err := m.client()

	if err != nil {
		return fmt.Errorf("connect to smtp server: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

// Test dials the server and authenticates without sending anything.
func (m *Mailer) Test(ctx context.Context) error {
	client, err := m.client()

	if err != nil {
		return err
	}

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("connect to smtp server: %w", err)
	}

	return client.Close()
}

func (m *Mailer) client() (*mail.Client, error) {
	options := []mail.Option{
		mail.WithPort(m.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.Username),
		mail.WithPassword(m.config.Password),
	}

	if m.config.Secure {
		options = append(options, mail.WithSSLPort(false))
	} else {
		options = append(options, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	return mail.NewClient(m.config.Host, options...)
}

func (m *Mailer) compose(message Message) (*mail.Msg, error) {
	if message.To == "" {
		return nil, errors.New("recipient address missing")
	}

	msg := mail.NewMsg()
	msg.SetMessageIDWithValue(uuid.NewString())

	if m.config.FromName != "" {
		if err := msg.FromFormat(m.config.FromName, m.config.From); err != nil {
			return nil, fmt.Errorf("invalid sender %s: %w", m.config.From, err)
		}
	} else {
		if err := msg.From(m.config.From); err != nil {
			return nil, fmt.Errorf("invalid sender %s: %w", m.config.From, err)
		}
	}

	if message.ToName != "" {
		if err := msg.AddToFormat(message.ToName, message.To); err != nil {
			return nil, fmt.Errorf("invalid recipient %s: %w", message.To, err)
		}
	} else {
		if err := msg.To(message.To); err != nil {
			return nil, fmt.Errorf("invalid recipient %s: %w", message.To, err)
		}
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextHTML, message.HTMLBody)

	if message.TextBody != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, message.TextBody)
	}

	for _, attachment := range message.Attachments {
		if _, err := os.Stat(attachment); err != nil {
			return nil, fmt.Errorf("attachment %s: %w", attachment, err)
		}

		msg.AttachFile(attachment)
	}

	return msg, nil
}
