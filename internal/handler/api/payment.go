package api

import (
	"net/http"

	reqdto "venue-reservations/internal/handler/dto/request"
	resdto "venue-reservations/internal/handler/dto/response"
	"venue-reservations/internal/handler/middleware"
	"venue-reservations/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments commands.PaymentCommands
}

func NewPaymentHandler(payments commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// @Summary Record manual payment (staff)
// @Description Record an offline settlement against a pending obligation
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Obligation ID"
// @Param request body reqdto.ManualPaymentRequest true "Settlement details"
// @Success 200 {object} shared.Result
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /obligations/{id}/payments [post]
func (h *PaymentHandler) RecordManualPayment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req reqdto.ManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	settledOn, err := req.ParseSettledOn()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settlement date, expected YYYY-MM-DD"})
		return
	}

	result, err := h.payments.RecordManualSettlement(c.Request.Context(), actor, id, req.Method, settledOn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Create payment intent
// @Description Start an online payment for a pending obligation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Obligation ID"
// @Success 201 {object} resdto.PaymentIntentResponse
// @Failure 409 {object} httperr.Response
// @Router /obligations/{id}/intents [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}
	id, err := parseID(c)
	if err != nil {
		return
	}

	transactionID, err := h.payments.CreatePaymentIntent(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.PaymentIntentResponse{TransactionID: transactionID})
}
