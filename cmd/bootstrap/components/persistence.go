package components

import (
	"log/slog"

	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/infra/gateway"
	"venue-reservations/internal/infra/notify"
	"venue-reservations/internal/infra/readstore"
	"venue-reservations/internal/infra/uow"
	"venue-reservations/internal/pkg/config"
	"venue-reservations/internal/usecase/commands"
	"venue-reservations/internal/usecase/queries"
	"venue-reservations/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewCalendarReadStore,
			fx.As(new(queries.PublicEventRepo)),
		),
		fx.Annotate(
			readstore.NewAutomationReadStore,
			fx.As(new(queries.RunViewRepo)),
		),
		fx.Annotate(
			NewJobDispatcher,
			fx.As(new(commands.NotificationDispatcher)),
		),
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewJobDispatcher(dbtx db.DBTX, logger *slog.Logger) *notify.JobDispatcher {
	return notify.NewJobDispatcher(dbtx, logger)
}

func NewPaymentGateway(cfg config.Config) *gateway.HTTPPaymentGateway {
	return gateway.NewHTTPPaymentGateway(cfg.Gateway)
}
