package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pitchbook/internal/pkg/clock"
)

const maxDeliveryAttempts = 5

// Worker polls the outbox and delivers due jobs. Failures are rescheduled with
// a linear backoff per attempt and parked as dead after the attempt cap.
type Worker struct {
	queue        Queue
	sender       Sender
	clock        clock.Clock
	logger       *slog.Logger
	pollInterval time.Duration
	batchSize    int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(queue Queue, sender Sender, c clock.Clock, logger *slog.Logger, pollInterval time.Duration, batchSize int) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		clock:        c,
		logger:       logger,
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go w.run(ctx)
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	jobs, err := w.queue.ClaimDue(ctx, w.clock.Now(), w.batchSize)
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to claim notification jobs", slog.String("error", err.Error()))
		return
	}

	for _, job := range jobs {
		if err := w.sender.Send(ctx, job); err != nil {
			w.logger.WarnContext(ctx, "notification delivery failed",
				slog.String("job_id", job.ID.String()),
				slog.String("kind", job.Kind),
				slog.Int("attempts", int(job.Attempts)),
				slog.String("error", err.Error()),
			)
			nextRun := w.clock.Now().Add(time.Duration(job.Attempts+1) * w.pollInterval)
			if err := w.queue.MarkFailed(ctx, job.ID, job.Attempts, maxDeliveryAttempts, err.Error(), nextRun); err != nil {
				w.logger.ErrorContext(ctx, "failed to reschedule notification job", slog.String("error", err.Error()))
			}
			continue
		}
		if err := w.queue.MarkDone(ctx, job.ID); err != nil {
			w.logger.ErrorContext(ctx, "failed to mark notification job done", slog.String("error", err.Error()))
		}
	}
}
