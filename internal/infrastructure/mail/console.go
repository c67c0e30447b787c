package mail

import (
	"context"
	"net/mail"

	"go.uber.org/zap"
)

// ConsoleMailer writes messages to the log instead of sending them.
type ConsoleMailer struct {
	from mail.Address
	log  *zap.Logger
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer(from mail.Address, log *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{from: from, log: log}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	if !msg.HasRecipients() {
		return ErrNoRecipients
	}
	m.log.Info("email",
		zap.String("from", m.from.String()),
		zap.String("to", joinAddresses(msg.To)),
		zap.String("cc", joinAddresses(msg.Cc)),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
