package main

import (
	"context"
	"log/slog"
	"os"

	"venue-reservations/cmd/bootstrap"
	"venue-reservations/internal/usecase/automation"

	"go.uber.org/fx"
)

// The daily automation CLI. Intended to run once per day from a scheduler;
// exits non-zero when any subtask failed so the scheduler can alert.
func main() {
	exitCode := 0

	app := fx.New(
		bootstrap.BatchModule,
		fx.Provide(
			func() *slog.Logger {
				return slog.New(slog.NewJSONHandler(os.Stdout, nil))
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, runner automation.Runner, logger *slog.Logger, shutdowner fx.Shutdowner) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						report, err := runner.RunDaily(context.Background())
						if err != nil {
							logger.Error("automation run failed", "error", err.Error())
							exitCode = 1
						} else if !report.Success {
							logger.Warn("automation run completed with task failures", "message", report.Message)
							exitCode = 1
						} else {
							logger.Info("automation run completed", "message", report.Message)
						}
						_ = shutdowner.Shutdown()
					}()
					return nil
				},
			})
		}),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start automation", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop automation cleanly", "error", err)
	}

	os.Exit(exitCode)
}
