// Package smtp implements the Notifier port: workflow emails rendered as
// HTML with a plain-text alternative and delivered over SMTP.
package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"
)

// Sender delivers a rendered email. Split from the notifier so tests and
// environments without an SMTP host can swap the transport.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Config carries the SMTP connection settings. An empty Host selects the
// logging sender instead of a real connection.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSender creates the sender for the given configuration.
func NewSender(cfg Config, logger *slog.Logger) Sender {
	if cfg.Host == "" {
		logger.Info("smtp host not configured, emails will be logged instead of sent")
		return &logSender{logger: logger}
	}

	return &smtpSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		from: cfg.From,
	}
}

type smtpSender struct {
	addr string
	auth smtp.Auth
	from string
}

func (s *smtpSender) Send(_ context.Context, to, subject, htmlBody, textBody string) error {
	message := buildMessage(s.from, to, subject, htmlBody, textBody)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, message); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

const multipartBoundary = "freight-alt-boundary"

// buildMessage assembles a multipart/alternative MIME message so clients
// without HTML rendering fall back to the text part.
func buildMessage(from, to, subject, htmlBody, textBody string) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", multipartBoundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", multipartBoundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", multipartBoundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", multipartBoundary)

	return []byte(b.String())
}

// logSender logs emails instead of delivering them. Used in development.
type logSender struct {
	logger *slog.Logger
}

func (s *logSender) Send(_ context.Context, to, subject, _, textBody string) error {
	s.logger.Info("email (not sent)", "to", to, "subject", subject, "body", textBody)
	return nil
}
