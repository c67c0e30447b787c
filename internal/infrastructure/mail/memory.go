package mail

import (
	"context"
	"sync"
)

// MemoryMailer keeps sent messages; used by tests and the dev seed tool.
type MemoryMailer struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

var _ Mailer = (*MemoryMailer)(nil)

func (m *MemoryMailer) Send(_ context.Context, msg Message) error {
	if m.Err != nil {
		return m.Err
	}
	if !msg.HasRecipients() {
		return ErrNoRecipients
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *MemoryMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
