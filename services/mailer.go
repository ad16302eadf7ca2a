package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"retreat-booking-server/config"
)

// Mailer sends transactional email over SMTP. All sends are best-effort:
// failures are logged and swallowed, never surfaced to the request that
// triggered them.
type Mailer struct{}

// NewMailer creates a new mailer
func NewMailer() *Mailer {
	return &Mailer{}
}

// Send delivers a plain-text email to a single recipient
func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return nil
	}

	cfg := config.AppConfig.SMTP
	if cfg.Host == "" {
		log.Printf("📧 SMTP not configured, skipping email to %s (%s)", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := cfg.Host + ":" + cfg.Port
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// SendAsync fires the send on its own goroutine and only logs the outcome
func (m *Mailer) SendAsync(to, subject, body string) {
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			log.Printf("❌ Email send failed: %v", err)
			return
		}
		log.Printf("📧 Email sent to %s: %s", to, subject)
	}()
}

// SendVerificationEmail sends the email-verification link
func (m *Mailer) SendVerificationEmail(to, token string) {
	link := fmt.Sprintf("%s/verify-email?token=%s", config.AppConfig.Site.BaseURL, token)
	body := fmt.Sprintf(
		"Welcome to %s!\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nThe link expires in 24 hours.",
		config.AppConfig.Site.Name, link,
	)
	m.SendAsync(to, "Confirm your email address", body)
}

// SendTwoFactorCode sends the 6-digit login code
func (m *Mailer) SendTwoFactorCode(to, code string) {
	body := fmt.Sprintf("Your %s login code is: %s\n\nIt expires in 10 minutes.", config.AppConfig.Site.Name, code)
	m.SendAsync(to, "Your login code", body)
}

// SendPasswordReset sends the password-reset link
func (m *Mailer) SendPasswordReset(to, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.Site.BaseURL, token)
	body := fmt.Sprintf("A password reset was requested for your account.\n\nReset it here:\n\n%s\n\nIf this wasn't you, ignore this email.", link)
	m.SendAsync(to, "Reset your password", body)
}

// SendBookingStatusUpdate notifies a customer about a booking status change
func (m *Mailer) SendBookingStatusUpdate(to, reference, serviceName, status string) {
	body := fmt.Sprintf(
		"Your booking %s for %q is now %s.\n\nYou can review the details in your account at %s.",
		reference, serviceName, status, config.AppConfig.Site.BaseURL,
	)
	m.SendAsync(to, fmt.Sprintf("Booking %s: %s", reference, status), body)
}
