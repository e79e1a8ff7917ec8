package response

import (
	"github.com/google/uuid"
)

type SubmittedResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

type PaymentIntentResponse struct {
	TransactionID string `json:"transaction_id"`
}
