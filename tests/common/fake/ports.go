//go:build unit

package fake

import (
	"context"
	"sync"

	"venue-reservations/internal/usecase/commands"
)

// Dispatcher records every notification handed to it.
type Dispatcher struct {
	mu   sync.Mutex
	sent []commands.Notification
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Send(_ context.Context, n commands.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
}

func (d *Dispatcher) Sent() []commands.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]commands.Notification, len(d.sent))
	copy(out, d.sent)
	return out
}

func (d *Dispatcher) SentTemplates() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, n := range d.sent {
		out = append(out, n.Template)
	}
	return out
}

// Gateway returns a canned transaction id or a configured error.
type Gateway struct {
	NextTransactionID string
	Err               error
	Calls             []commands.PaymentIntent
}

func NewGateway(transactionID string) *Gateway {
	return &Gateway{NextTransactionID: transactionID}
}

func (g *Gateway) CreatePaymentIntent(_ context.Context, intent commands.PaymentIntent) (string, error) {
	g.Calls = append(g.Calls, intent)
	if g.Err != nil {
		return "", g.Err
	}
	return g.NextTransactionID, nil
}
