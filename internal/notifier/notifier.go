package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Job is one pending delivery from the notification outbox.
type Job struct {
	ID       uuid.UUID
	Kind     string
	Payload  []byte
	Attempts int32
}

// Queue is the outbox surface the dispatcher drains.
type Queue interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts, maxAttempts int32, errMsg string, nextRun time.Time) error
}

type Sender interface {
	Send(ctx context.Context, job Job) error
}

// LogSender writes deliveries to the structured log. It stands in for a mail
// or push gateway; swapping it out is a wiring change only.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, job Job) error {
	var payload map[string]any
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		payload = map[string]any{"raw": string(job.Payload)}
	}
	s.logger.InfoContext(ctx, "notification sent",
		slog.String("job_id", job.ID.String()),
		slog.String("kind", job.Kind),
		slog.Any("payload", payload),
	)
	return nil
}
