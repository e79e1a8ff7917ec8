package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/handler/api"
	"venue-reservations/internal/handler/middleware"
	"venue-reservations/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	publicHandler *api.PublicHandler,
	webhookHandler *api.WebhookHandler,
	automationHandler *api.AutomationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, reservationHandler, paymentHandler, publicHandler, webhookHandler, automationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	publicHandler *api.PublicHandler,
	webhookHandler *api.WebhookHandler,
	automationHandler *api.AutomationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.Submit},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListMine},
				{Method: http.MethodGet, Path: "/queue", Handler: reservationHandler.ListQueue},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.Delete},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: reservationHandler.Approve},
				{Method: http.MethodPost, Path: "/:id/deny", Handler: reservationHandler.Deny},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: reservationHandler.Complete},
				{Method: http.MethodPost, Path: "/:id/close", Handler: reservationHandler.Close},
				{Method: http.MethodGet, Path: "/:id/obligations", Handler: reservationHandler.ListObligations},
				{Method: http.MethodPost, Path: "/:id/waive", Handler: reservationHandler.WaiveAll},
			})
		}

		obligations := apiGroup.Group("/obligations")
		obligations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(obligations, []route{
				{Method: http.MethodPost, Path: "/:id/payments", Handler: paymentHandler.RecordManualPayment},
				{Method: http.MethodPost, Path: "/:id/intents", Handler: paymentHandler.CreateIntent},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/holidays", Handler: publicHandler.Holidays},
			{Method: http.MethodGet, Path: "/public/calendar", Handler: publicHandler.Calendar},
			{Method: http.MethodGet, Path: "/public/calendar.ics", Handler: publicHandler.CalendarICS},
			{Method: http.MethodPost, Path: "/webhooks/payments", Handler: webhookHandler.PaymentUpdate},
			{Method: http.MethodPost, Path: "/webhooks/refunds", Handler: webhookHandler.RefundUpdate},
		})

		auto := apiGroup.Group("/automation")
		auto.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleManager))
		{
			addRoutes(auto, []route{
				{Method: http.MethodPost, Path: "/run", Handler: automationHandler.Run},
				{Method: http.MethodGet, Path: "/runs", Handler: automationHandler.ListRuns},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
