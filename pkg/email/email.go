package email

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/kayatek/servis-api/internal/config"
)

// EmailService sends quote emails with a rendered document attached.
type EmailService struct {
	cfg config.SMTPConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendQuoteEmail sends a quote to the recipient with the rendered document
// attached. cc may be empty.
func (s *EmailService) SendQuoteEmail(to string, cc []string, subject, body string, attachment []byte, filename string) error {
	if to == "" {
		return fmt.Errorf("email: recipient is required")
	}

	recipients := append([]string{to}, cc...)
	message := s.buildMessage(to, cc, subject, body, attachment, filename)

	addr := s.cfg.Host + ":" + s.cfg.Port

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, recipients, message); err != nil {
		return fmt.Errorf("email: failed to send: %w", err)
	}
	return nil
}

// buildMessage builds a multipart MIME message with a plain-text body and a
// base64-encoded text attachment.
func (s *EmailService) buildMessage(to string, cc []string, subject, body string, attachment []byte, filename string) []byte {
	const boundary = "servis-api-quote-boundary"

	var b strings.Builder
	b.WriteString("From: " + s.cfg.From + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	if len(cc) > 0 {
		b.WriteString("Cc: " + strings.Join(cc, ", ") + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if len(attachment) == 0 {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
		b.WriteString("\r\n")
		b.WriteString(body)
		return []byte(b.String())
	}

	b.WriteString("Content-Type: multipart/mixed; boundary=\"" + boundary + "\"\r\n")
	b.WriteString("\r\n")

	// Body part
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	// Attachment part
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"; name=\"" + filename + "\"\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("Content-Disposition: attachment; filename=\"" + filename + "\"\r\n")
	b.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString(attachment)
	// Wrap base64 payload at 76 characters per RFC 2045.
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}
