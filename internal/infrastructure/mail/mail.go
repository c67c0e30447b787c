// Package mail delivers rendered notification emails.
package mail

import (
	"context"
	"errors"
	"net/mail"
	"strings"
)

var ErrNoRecipients = errors.New("mail: message has no recipients")

type Message struct {
	To      []mail.Address
	Cc      []mail.Address
	Subject string
	Text    string
	HTML    string
}

func (m *Message) HasRecipients() bool { return len(m.To) > 0 }
func (m *Message) HasContent() bool    { return m.Text != "" || m.HTML != "" }

// Mailer is anything that can deliver a message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

func joinAddresses(addrs []mail.Address) string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return strings.Join(out, ", ")
}
