package commands

import (
	"context"

	"github.com/google/uuid"
)

// Notification is handed to the dispatch channel with raw values; the
// channel applies its own template rendering and timezone formatting.
type Notification struct {
	Template   string
	EntityType string
	EntityID   uuid.UUID
	// DedupKey suppresses duplicate enqueues for date-keyed reminders.
	// Empty means no dedup.
	DedupKey string
	Payload  map[string]any
	Channels []string
}

// NotificationDispatcher is fire-and-forget: a delivery failure must never
// roll back the state transition that triggered it, so Send returns nothing
// and implementations log their own errors.
type NotificationDispatcher interface {
	Send(ctx context.Context, n Notification)
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// PaymentIntent mirrors the external gateway's generic linking contract.
type PaymentIntent struct {
	EntityTable    string
	EntityIDColumn string
	EntityID       uuid.UUID
	LinkColumn     string
	AmountCents    int64
	Description    string
}

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, intent PaymentIntent) (transactionID string, err error)
}

// Gateway webhook status values.
const (
	GatewayStatusSucceeded = "succeeded"
	GatewayStatusFailed    = "failed"
	GatewayStatusCanceled  = "canceled"
)
