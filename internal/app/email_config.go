package app

import (
	"strings"

	"github.com/freshmart/storefront/pkg/mail"
)

// SMTPSettings converts EmailConfig to the mail package representation.
// Whitespace is trimmed because these values usually arrive from
// environment variables, and the From address falls back to the SMTP
// username so a minimal deployment only has to set credentials.
func (c EmailConfig) SMTPSettings() mail.SMTPSettings {
	from := strings.TrimSpace(c.SMTP.From)
	username := strings.TrimSpace(c.SMTP.Username)
	if from == "" {
		from = username
	}

	return mail.SMTPSettings{
		Enabled:  c.SMTP.Enabled,
		Host:     strings.TrimSpace(c.SMTP.Host),
		Port:     c.SMTP.Port,
		Username: username,
		Password: c.SMTP.Password,
		From:     from,
		UseTLS:   c.SMTP.UseTLS,
		Timeout:  c.SMTP.Timeout,
	}
}
