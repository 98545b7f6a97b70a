package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/trustdesk/trustdesk/internal/config"
)

// Mailer sends notification emails through SMTP
type Mailer struct {
	from     string
	password string
	host     string
	port     string
}

// New creates a mailer from configuration
func New(conf *config.Config) *Mailer {
	return &Mailer{
		from:     conf.SMTP_USER,
		password: conf.SMTP_PASSWORD,
		host:     conf.SMTP_HOST,
		port:     conf.SMTP_PORT,
	}
}

// Send sends an HTML email with subject and body
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" || m.port == "" || m.from == "" || m.password == "" {
		return fmt.Errorf("missing SMTP configuration")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"utf-8\"\r\n"+
			"\r\n%s\r\n",
		m.from, to, subject, body,
	))

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}
