package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"chefotw/config"
)

// Sender dispatches a single HTML mail. Failures are for the caller to log;
// no send ever blocks a primary response.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

type Mailer struct {
	from     string
	password string
	host     string
	port     string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		from:     cfg.MailUsername,
		password: cfg.MailPassword,
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
	}
}

func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		m.from, strings.Join(to, ", "), subject,
	)
	msg := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, to, msg)
}
