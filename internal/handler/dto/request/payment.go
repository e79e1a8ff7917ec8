package request

import "time"

type ManualPaymentRequest struct {
	Method    string `json:"method" binding:"required"`
	SettledOn string `json:"settled_on" binding:"required"`
}

// ParseSettledOn accepts the settlement date as YYYY-MM-DD.
func (r ManualPaymentRequest) ParseSettledOn() (time.Time, error) {
	return time.Parse("2006-01-02", r.SettledOn)
}

type PaymentWebhookRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
	AmountCents   int64  `json:"amount_cents"`
}

type RefundWebhookRequest struct {
	TransactionID      string `json:"transaction_id" binding:"required"`
	TotalRefundedCents int64  `json:"total_refunded_cents"`
}
