// Package mail sends transactional email through SendGrid. Delivery
// failures are logged, never surfaced to callers: every send in this system
// is a notification side effect, not part of the operation's contract.
package mail

import (
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends a single message to a single recipient.
type Mailer interface {
	Send(toName, toAddress, subject, text, html string)
}

type sendgridMailer struct {
	key      string
	from     *sgmail.Email
	fallback Mailer
}

// NewSendgridMailer creates a Mailer backed by SendGrid. With an empty API
// key it degrades to the console mailer so local development keeps working.
func NewSendgridMailer(apiKey, fromName, fromAddress string) Mailer {
	if apiKey == "" {
		log.Println("mail: SENDGRID_API_KEY not set, falling back to console mailer")
		return NewConsoleMailer()
	}
	return &sendgridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromAddress),
	}
}

func (m *sendgridMailer) Send(toName, toAddress, subject, text, html string) {
	if toAddress == "" {
		return
	}
	if html == "" {
		html = "<p>" + text + "</p>"
	}
	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(toName, toAddress), text, html)

	client := sendgrid.NewSendClient(m.key)
	res, err := client.Send(msg)
	if err != nil {
		log.Printf("mail: sending to %s: %v", toAddress, err)
		return
	}
	if res.StatusCode >= http.StatusBadRequest {
		log.Printf("mail: sending to %s: status %d, body %s", toAddress, res.StatusCode, res.Body)
	}
}

type consoleMailer struct{}

// NewConsoleMailer creates a Mailer that just logs messages.
func NewConsoleMailer() Mailer {
	return &consoleMailer{}
}

func (m *consoleMailer) Send(toName, toAddress, subject, text, _ string) {
	log.Printf("mail (console): to=%s <%s> subject=%q body=%q", toName, toAddress, subject, text)
}
