// Package contact delivers the portfolio contact form by SMTP.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned when SMTP credentials are missing.
	ErrNotConfigured = errors.New("SMTP credentials not configured")
	// ErrInvalidMessage is returned for a blank name, email or message.
	ErrInvalidMessage = errors.New("name, email and message are required")
)

// Config holds SMTP settings.
type Config struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}

// Message is one contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Validate rejects blank fields and header injection attempts.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Body) == "" {
		return ErrInvalidMessage
	}
	if strings.ContainsAny(m.Name+m.Email, "\r\n") {
		return fmt.Errorf("%w: line breaks in header fields", ErrInvalidMessage)
	}
	return nil
}

// Sender delivers contact messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends contact messages through an SMTP relay.
type Mailer struct {
	cfg    Config
	send   SendFunc
	logger *zap.Logger
}

// NewMailer creates a Mailer. A nil send uses smtp.SendMail.
func NewMailer(cfg Config, send SendFunc, logger *zap.Logger) *Mailer {
	if send == nil {
		send = smtp.SendMail
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, send: send, logger: logger.Named("contact")}
}

// Configured reports whether credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Password != "" && m.cfg.To != ""
}

// Send validates and delivers msg.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, Compose(m.cfg, msg))
	if err != nil {
		m.logger.Error("Error sending email", zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("Email sent", zap.String("name", msg.Name), zap.String("email", msg.Email))
	return nil
}

// Compose renders the RFC 822 message.
func Compose(cfg Config, msg Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
