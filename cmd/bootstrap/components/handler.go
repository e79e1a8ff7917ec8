package components

import (
	"venue-reservations/internal/handler"
	"venue-reservations/internal/handler/api"
	"venue-reservations/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewPublicHandler,
		api.NewWebhookHandler,
		api.NewAutomationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
