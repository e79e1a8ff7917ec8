package components

import (
	"venue-reservations/internal/infra/repository"
	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/usecase/automation"
	"venue-reservations/internal/usecase/commands"
	"venue-reservations/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewPaymentCommands,
		automation.NewRunner,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			repository.NewHolidayRuleRepository,
			fx.As(new(queries.HolidayRuleRepo)),
		),
		queries.NewReservationQueries,
		queries.NewCalendarQueries,
		queries.NewHolidayQueries,
		queries.NewAutomationQueries,
	),
)
