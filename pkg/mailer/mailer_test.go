package mailer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{From: "a@example.com"}); err == nil {
		t.Fatal("expected error for missing host")
	}

	if _, err := New(Config{Host: "smtp.example.com"}); err == nil {
		t.Fatal("expected error for missing sender")
	}
}

func TestNewDefaultsPort(t *testing.T) {
	m, err := New(Config{Host: "smtp.example.com", From: "a@example.com"})
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	if m.config.Port != 587 {
		t.Fatalf("expected starttls default port 587, got %d", m.config.Port)
	}

	m, err = New(Config{Host: "smtp.example.com", From: "a@example.com", Secure: true})
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	if m.config.Port != 465 {
		t.Fatalf("expected implicit tls default port 465, got %d", m.config.Port)
	}
}

func TestComposeMessage(t *testing.T) {
	m, err := New(Config{Host: "smtp.example.com", From: "sender@example.com", FromName: "Sender"})
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}

	attachment := filepath.Join(t.TempDir(), "report.txt")

	if err := os.WriteFile(attachment, []byte("report body"), 0644); err != nil {
		t.Fatalf("write attachment: %v", err)
	}

	msg, err := m.compose(Message{
		To:          "rcpt@example.com",
		Subject:     "changed files",
		HTMLBody:    "<p>see attachment</p>",
		TextBody:    "see attachment",
		Attachments: []string{attachment},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	var buf bytes.Buffer

	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}

	raw := buf.String()

	for _, want := range []string{"Subject: changed files", "rcpt@example.com", "report.txt"} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q", want)
		}
	}
}

func TestComposeRejectsMissingRecipient(t *testing.T) {
	m, err := New(Config{Host: "smtp.example.com", From: "sender@example.com"})
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}

	if _, err := m.compose(Message{Subject: "no recipient"}); err == nil {
		t.Fatal("expected error for missing recipient")
	}
}

func TestComposeRejectsMissingAttachment(t *testing.T) {
	m, err := New(Config{Host: "smtp.example.com", From: "sender@example.com"})
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}

	_, err = m.compose(Message{
		To:          "rcpt@example.com",
		Attachments: []string{filepath.Join(t.TempDir(), "missing.zip")},
	})
	if err == nil {
		t.Fatal("expected error for missing attachment")
	}
}
