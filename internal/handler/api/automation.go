package api

import (
	"net/http"
	"strconv"

	"venue-reservations/internal/handler/middleware"
	"venue-reservations/internal/usecase/automation"
	"venue-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AutomationHandler struct {
	runner  automation.Runner
	queries queries.AutomationQueries
}

func NewAutomationHandler(runner automation.Runner, qs queries.AutomationQueries) *AutomationHandler {
	return &AutomationHandler{runner: runner, queries: qs}
}

// @Summary Trigger the daily automation run (manager)
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} automation.Report
// @Failure 403 {object} httperr.Response
// @Router /automation/run [post]
func (h *AutomationHandler) Run(c *gin.Context) {
	report, err := h.runner.RunDaily(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary List recent automation runs (manager)
// @Tags automation
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows"
// @Success 200 {array} queries.RunView
// @Failure 403 {object} httperr.Response
// @Router /automation/runs [get]
func (h *AutomationHandler) ListRuns(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		respondMissingActor(c)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	views, err := h.queries.ListRuns(c.Request.Context(), actor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
