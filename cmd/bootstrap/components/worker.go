package components

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"pitchbook/internal/notifier"
	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/pkg/config"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			notifier.NewLogSender,
			fx.As(new(notifier.Sender)),
		),
		func(q notifier.Queue, s notifier.Sender, c clock.Clock, logger *slog.Logger, cfg config.Config) *notifier.Worker {
			return notifier.NewWorker(q, s, c, logger, cfg.Worker.PollInterval, cfg.Worker.BatchSize)
		},
	),
	fx.Invoke(registerWorker),
)

func registerWorker(lc fx.Lifecycle, w *notifier.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			w.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			w.Stop()
			return nil
		},
	})
}
