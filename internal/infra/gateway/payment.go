package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"venue-reservations/internal/pkg/config"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/commands"
)

// HTTPPaymentGateway talks to the external payment provider's REST API. The
// provider's linking contract is generic: the intent names the table, id
// column and link column, and the provider echoes them back in webhooks.
type HTTPPaymentGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPPaymentGateway(cfg config.GatewayConfig) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type createIntentRequest struct {
	EntityTable    string `json:"entity_table"`
	EntityIDColumn string `json:"entity_id_column"`
	EntityID       string `json:"entity_id"`
	LinkColumn     string `json:"link_column"`
	AmountCents    int64  `json:"amount_cents"`
	Description    string `json:"description"`
}

type createIntentResponse struct {
	TransactionID string `json:"transaction_id"`
}

func (g *HTTPPaymentGateway) CreatePaymentIntent(ctx context.Context, intent commands.PaymentIntent) (string, error) {
	body, err := json.Marshal(createIntentRequest{
		EntityTable:    intent.EntityTable,
		EntityIDColumn: intent.EntityIDColumn,
		EntityID:       intent.EntityID.String(),
		LinkColumn:     intent.LinkColumn,
		AmountCents:    intent.AmountCents,
		Description:    intent.Description,
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to encode payment intent")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payment_intents", bytes.NewReader(body))
	if err != nil {
		return "", errs.Wrap(err, "failed to build payment intent request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", errs.Wrap(err, "payment gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", errs.Newf("payment gateway returned %d: %s", resp.StatusCode, string(detail))
	}

	var out createIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errs.Wrap(err, "failed to decode payment intent response")
	}
	if out.TransactionID == "" {
		return "", errs.New("payment gateway returned empty transaction id")
	}
	return out.TransactionID, nil
}

var _ commands.PaymentGateway = (*HTTPPaymentGateway)(nil)
