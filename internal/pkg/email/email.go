package email

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/presensia/attendance-backend-go/internal/config"
)

const maxRetries = 3

// notificationTemplate is the shared layout for notification emails. The
// in-app notification carries the same title and message.
const notificationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Title}}</h2>
  <p>{{.Message}}</p>
  <p style="color: #888; font-size: 12px;">Email ini dikirim otomatis oleh sistem presensi. Mohon tidak membalas.</p>
</body>
</html>`

// EmailService delivers notification emails. Delivery is best effort;
// callers treat failures as non-fatal.
type EmailService interface {
	SendNotification(to, title, message string) error
}

type emailServiceImpl struct {
	cfg      config.SMTPConfig
	template *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}

	return &emailServiceImpl{
		cfg:      cfg,
		template: tmpl,
	}, nil
}

type notificationEmailData struct {
	Title   string
	Message string
}

// SendNotification renders the notification layout and sends it to the
// recipient.
func (s *emailServiceImpl) SendNotification(to, title, message string) error {
	var body bytes.Buffer
	if err := s.template.Execute(&body, notificationEmailData{Title: title, Message: message}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, title, body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
