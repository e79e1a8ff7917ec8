package api

import (
	"errors"
	"net/http"

	"venue-reservations/internal/handler/httperr"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// respondError maps the usecase sentinel errors onto HTTP statuses. Anything
// unrecognized is an internal error; the cause stays on the gin error stack
// for the logging middleware.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", err.Error())
	case errors.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrPermission):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	case errors.Is(err, errs.ErrSlotConflict):
		detail := gin.H{}
		if sc, ok := infra.AsSlotConflict(err); ok {
			detail["colliding_reservation_id"] = sc.CollidingID
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot conflicts with a confirmed reservation", detail)
	case errors.Is(err, errs.ErrStateTransition), errors.Is(err, errs.ErrNotApplicable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Operation not applicable in the current state", err.Error())
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func respondMissingActor(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
