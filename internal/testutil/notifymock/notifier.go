package notifymock

import (
	"context"
	"sync"

	"oalass-backend/internal/notify"
)

var _ notify.Notifier = (*Notifier)(nil)

// Notifier records every notification it receives.
type Notifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (m *Notifier) Notify(_ context.Context, n notify.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
}

func (m *Notifier) Sent() []notify.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Notification(nil), m.sent...)
}

// Templates lists the template names in send order.
func (m *Notifier) Templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, n := range m.sent {
		out = append(out, n.Template)
	}
	return out
}
