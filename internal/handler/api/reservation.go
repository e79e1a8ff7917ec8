package api

import (
	"net/http"

	reqdto "venue-reservations/internal/handler/dto/request"
	resdto "venue-reservations/internal/handler/dto/response"
	"venue-reservations/internal/handler/middleware"
	"venue-reservations/internal/usecase/commands"
	"venue-reservations/internal/usecase/queries"
	"venue-reservations/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	payments commands.PaymentCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	payments commands.PaymentCommands,
	qs queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		payments: payments,
		queries:  qs,
	}
}

// @Summary Submit reservation request
// @Description Submit a reservation request for staff review
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitReservationRequest true "Reservation request"
// @Success 201 {object} resdto.SubmittedResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}

	var req reqdto.SubmitReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.commands.Submit(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.SubmittedResponse{
		ID:      id,
		Message: "Reservation request submitted for review.",
	})
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}
	id, err := parseID(c)
	if err != nil {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List own reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ReservationListItem
// @Router /reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}

	items, err := h.queries.ListByRequester(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary List reservations by status (staff)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string true "Reservation status"
// @Success 200 {array} queries.ReservationListItem
// @Failure 403 {object} httperr.Response
// @Router /reservations/queue [get]
func (h *ReservationHandler) ListQueue(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}

	status := c.DefaultQuery("status", "pending")
	items, err := h.queries.ListByStatus(c.Request.Context(), actor, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Approve reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Result
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	h.transition(c, func(actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
		return h.commands.Approve(c.Request.Context(), actor, id)
	})
}

// @Summary Deny reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReviewActionRequest true "Denial reason"
// @Success 200 {object} shared.Result
// @Router /reservations/{id}/deny [post]
func (h *ReservationHandler) Deny(c *gin.Context) {
	var req reqdto.ReviewActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.transition(c, func(actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
		return h.commands.Deny(c.Request.Context(), actor, id, req.Reason)
	})
}

// @Summary Cancel reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReviewActionRequest true "Cancellation reason"
// @Success 200 {object} shared.Result
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	var req reqdto.ReviewActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.transition(c, func(actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
		return h.commands.Cancel(c.Request.Context(), actor, id, req.Reason)
	})
}

// @Summary Complete reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Result
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c *gin.Context) {
	h.transition(c, func(actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
		return h.commands.Complete(c.Request.Context(), actor, id)
	})
}

// @Summary Close reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Result
// @Router /reservations/{id}/close [post]
func (h *ReservationHandler) Close(c *gin.Context) {
	h.transition(c, func(actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
		return h.commands.Close(c.Request.Context(), actor, id)
	})
}

// @Summary Delete reservation (admin)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Result
// @Failure 403 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	h.transition(c, func(actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
		return h.commands.Delete(c.Request.Context(), actor, id)
	})
}

// @Summary List payment obligations for a reservation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {array} queries.ObligationView
// @Router /reservations/{id}/obligations [get]
func (h *ReservationHandler) ListObligations(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}
	id, err := parseID(c)
	if err != nil {
		return
	}

	views, err := h.queries.ListObligations(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Waive all pending payments (manager)
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Result
// @Failure 403 {object} httperr.Response
// @Router /reservations/{id}/waive [post]
func (h *ReservationHandler) WaiveAll(c *gin.Context) {
	h.transition(c, func(actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
		return h.payments.WaiveAll(c.Request.Context(), actor, id)
	})
}

func (h *ReservationHandler) transition(c *gin.Context, fn func(actor shared.Actor, id uuid.UUID) (*shared.Result, error)) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}
	id, err := parseID(c)
	if err != nil {
		return
	}

	result, err := fn(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// parseID reads the :id path parameter, writing the 400 response itself on
// failure.
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, err
	}
	return id, nil
}
