package services

import (
	"testing"

	"retreat-booking-server/config"
)

func TestSendSkipsEmptyRecipient(t *testing.T) {
	// A host is configured, so a non-empty recipient would attempt delivery
	t.Setenv("SMTP_HOST", "smtp.example.com")
	config.Load()

	m := NewMailer()
	if err := m.Send("", "subject", "body"); err != nil {
		t.Errorf("Send with empty recipient returned error: %v", err)
	}
}

func TestSendSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	config.Load()

	m := NewMailer()
	if err := m.Send("user@example.com", "subject", "body"); err != nil {
		t.Errorf("Send without SMTP config returned error: %v", err)
	}
}
