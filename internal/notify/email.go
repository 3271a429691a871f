package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailNotifier sends messages via SMTP to a fixed recipient list
type EmailNotifier struct {
	host       string
	port       int
	username   string
	password   string
	from       string
	recipients []string
}

// NewEmailNotifier creates an email notifier. Recipients is a comma-separated
// address list; at least one recipient is required.
func NewEmailNotifier(host string, port int, username, password, from, recipients string) (Notifier, error) {
	var addrs []string
	for _, addr := range strings.Split(recipients, ",") {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	if len(addrs) == 0 {
		return nil, errors.New("at least one recipient is required")
	}

	return &EmailNotifier{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		from:       from,
		recipients: addrs,
	}, nil
}

// Send delivers the message as a plain-text email
func (n *EmailNotifier) Send(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body strings.Builder
	body.WriteString("From: " + n.from + "\r\n")
	body.WriteString("To: " + strings.Join(n.recipients, ", ") + "\r\n")
	body.WriteString("Subject: finledger notification\r\n")
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	body.WriteString("\r\n")
	body.WriteString(message)

	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	if err := smtp.SendMail(addr, auth, n.from, n.recipients, []byte(body.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
