// Package notifier delivers the rendered availability report.
package notifier

import (
	"context"
	"os"
)

// Message is one rendered report ready for delivery.
type Message struct {
	RunID   string
	Subject string
	HTML    string
	Summary string // short plain-text form for SMS and chat channels
}

// Notifier is a delivery channel for a report.
type Notifier interface {
	Send(ctx context.Context, m *Message) error
	Channel() string
}

// Result records how one channel's delivery attempt settled.
type Result struct {
	Channel string
	Err     error
}

// Manager fans a message out to the registered channels.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates an empty notification manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a delivery channel.
func (m *Manager) Register(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// Channels returns the registered channel names in registration order.
func (m *Manager) Channels() []string {
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Channel())
	}
	return names
}

// SendAll delivers the message on every registered channel. A channel
// failure is captured in its result and never stops the others.
func (m *Manager) SendAll(ctx context.Context, msg *Message) []Result {
	results := make([]Result, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		results = append(results, Result{
			Channel: n.Channel(),
			Err:     n.Send(ctx, msg),
		})
	}
	return results
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
