package mail

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridMailer struct {
	key  string
	host string
	from *sgmail.Email
}

var _ Mailer = (*SendgridMailer)(nil)

func NewSendgridMailer(apiKey string, from mail.Address) *SendgridMailer {
	return &SendgridMailer{
		key:  apiKey,
		host: sendgridHost,
		from: sgmail.NewEmail(from.Name, from.Address),
	}
}

// WithHost points the mailer at another API host (tests, EU region).
func (m *SendgridMailer) WithHost(host string) *SendgridMailer {
	m.host = host
	return m
}

func (m *SendgridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail(to.Name, to.Address))
	}
	for _, cc := range msg.Cc {
		p.AddCCs(sgmail.NewEmail(cc.Name, cc.Address))
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	if msg.Text != "" {
		v3.AddContent(sgmail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return v3
}

func (m *SendgridMailer) Send(_ context.Context, msg Message) error {
	if !msg.HasRecipients() {
		return ErrNoRecipients
	}
	req := sendgrid.GetRequest(m.key, sendgridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
