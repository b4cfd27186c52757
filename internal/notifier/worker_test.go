//go:build unit

package notifier

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchbook/internal/pkg/clock"
)

type fakeQueue struct {
	due []Job

	claimErr error
	done     []uuid.UUID
	failed   []failedCall
}

type failedCall struct {
	id          uuid.UUID
	attempts    int32
	maxAttempts int
	nextRun     time.Time
}

func (q *fakeQueue) ClaimDue(_ context.Context, _ time.Time, _ int) ([]Job, error) {
	if q.claimErr != nil {
		return nil, q.claimErr
	}
	jobs := q.due
	q.due = nil
	return jobs, nil
}

func (q *fakeQueue) MarkDone(_ context.Context, id uuid.UUID) error {
	q.done = append(q.done, id)
	return nil
}

func (q *fakeQueue) MarkFailed(_ context.Context, id uuid.UUID, attempts, maxAttempts int32, _ string, nextRun time.Time) error {
	q.failed = append(q.failed, failedCall{id: id, attempts: attempts, maxAttempts: int(maxAttempts), nextRun: nextRun})
	return nil
}

type fakeSender struct {
	failKinds map[string]bool
	sent      []Job
}

func (s *fakeSender) Send(_ context.Context, job Job) error {
	if s.failKinds[job.Kind] {
		return errors.New("smtp unreachable")
	}
	s.sent = append(s.sent, job)
	return nil
}

func newTestWorker(queue Queue, sender Sender, c clock.Clock) *Worker {
	logger := slog.New(slog.DiscardHandler)
	return NewWorker(queue, sender, c, logger, 5*time.Second, 20)
}

func TestDrain(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("delivers due jobs and marks them done", func(t *testing.T) {
		jobs := []Job{
			{ID: uuid.New(), Kind: "booking_created"},
			{ID: uuid.New(), Kind: "booking_confirmed"},
		}
		queue := &fakeQueue{due: jobs}
		sender := &fakeSender{}

		w := newTestWorker(queue, sender, clock.NewMockClock(now))
		w.drain(context.Background())

		require.Len(t, sender.sent, 2)
		assert.Equal(t, []uuid.UUID{jobs[0].ID, jobs[1].ID}, queue.done)
		assert.Empty(t, queue.failed)
	})

	t.Run("failed delivery reschedules with linear backoff", func(t *testing.T) {
		job := Job{ID: uuid.New(), Kind: "booking_created", Attempts: 2}
		queue := &fakeQueue{due: []Job{job}}
		sender := &fakeSender{failKinds: map[string]bool{"booking_created": true}}

		w := newTestWorker(queue, sender, clock.NewMockClock(now))
		w.drain(context.Background())

		require.Len(t, queue.failed, 1)
		call := queue.failed[0]
		assert.Equal(t, job.ID, call.id)
		assert.Equal(t, int32(2), call.attempts)
		assert.Equal(t, maxDeliveryAttempts, call.maxAttempts)
		assert.Equal(t, now.Add(3*5*time.Second), call.nextRun)
		assert.Empty(t, queue.done)
	})

	t.Run("one bad job does not block the rest", func(t *testing.T) {
		bad := Job{ID: uuid.New(), Kind: "booking_rejected"}
		good := Job{ID: uuid.New(), Kind: "booking_cancelled"}
		queue := &fakeQueue{due: []Job{bad, good}}
		sender := &fakeSender{failKinds: map[string]bool{"booking_rejected": true}}

		w := newTestWorker(queue, sender, clock.NewMockClock(now))
		w.drain(context.Background())

		require.Len(t, queue.failed, 1)
		require.Len(t, queue.done, 1)
		assert.Equal(t, good.ID, queue.done[0])
	})

	t.Run("claim failure is swallowed", func(t *testing.T) {
		queue := &fakeQueue{claimErr: errors.New("connection reset")}

		w := newTestWorker(queue, &fakeSender{}, clock.NewMockClock(now))
		w.drain(context.Background())

		assert.Empty(t, queue.done)
		assert.Empty(t, queue.failed)
	})
}

func TestWorkerStartStop(t *testing.T) {
	queue := &fakeQueue{due: []Job{{ID: uuid.New(), Kind: "booking_created"}}}
	sender := &fakeSender{}

	w := NewWorker(queue, sender, clock.NewRealClock(), slog.New(slog.DiscardHandler), 5*time.Millisecond, 20)
	w.Start()
	time.Sleep(30 * time.Millisecond)
	w.Stop()

	assert.Len(t, sender.sent, 1)
}
