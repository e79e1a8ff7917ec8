package api

import (
	"net/http"

	reqdto "venue-reservations/internal/handler/dto/request"
	"venue-reservations/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives gateway callbacks. The handlers always acknowledge
// known-shape payloads with 200 so the gateway stops retrying; idempotency
// lives in the usecase layer.
type WebhookHandler struct {
	payments commands.PaymentCommands
}

func NewWebhookHandler(payments commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{payments: payments}
}

// @Summary Payment status webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Gateway payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /webhooks/payments [post]
func (h *WebhookHandler) PaymentUpdate(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := h.payments.OnGatewayTransactionUpdate(c.Request.Context(), req.TransactionID, req.Status, req.AmountCents); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Refund status webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.RefundWebhookRequest true "Gateway payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /webhooks/refunds [post]
func (h *WebhookHandler) RefundUpdate(c *gin.Context) {
	var req reqdto.RefundWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := h.payments.OnGatewayRefundUpdate(c.Request.Context(), req.TransactionID, req.TotalRefundedCents); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
