// Package mailer delivers HTML mail over SMTP. It is driven by the email
// queue consumer: the web request only publishes an email event, and the
// consumer hands it to the Mailer.
package mailer

import (
	"encoding/json"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	amqp "github.com/streadway/amqp"
)

// Mailer sends HTML mail through a single SMTP server.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailer creates a new Mailer. An empty user disables authentication,
// which local catch-all servers such as MailHog expect.
func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Send delivers one HTML message.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         m.from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	var sb strings.Builder
	for k, v := range headers {
		sb.WriteString(k + ": " + v + "\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(sb.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// emailEvent mirrors the JSON payload published to the email queue.
type emailEvent struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// HandleEmailMessage is the queue-consumer handler: it decodes an email
// event and delivers it. Returning an error requeues the message.
func (m *Mailer) HandleEmailMessage(msg amqp.Delivery) error {
	var event emailEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode email event: %w", err)
	}
	if event.To == "" {
		return fmt.Errorf("email event without recipient")
	}
	return m.Send(event.To, event.Subject, event.Body)
}
