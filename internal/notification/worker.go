package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-contacts-backend/pkg/email"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/metrics"
	"go-contacts-backend/pkg/queue"
)

const (
	DefaultMaxAttempts  = 3
	DefaultRetryBackoff = 5 * time.Second

	pollTimeout  = 5 * time.Second
	errorBackoff = time.Second
)

// Sender delivers a rendered message. *email.EmailService satisfies it.
type Sender interface {
	Send(ctx context.Context, msg email.Message) error
}

type WorkerConfig struct {
	Queue       string
	MaxAttempts int
	// RetryBackoff is the wait before the first retry; it doubles per attempt.
	RetryBackoff time.Duration
}

// Worker drains the mail queue. A job that keeps failing is retried until
// MaxAttempts, then parked on "<queue>:failed". Jobs are acknowledged only
// after they were sent, re-enqueued or parked.
type Worker struct {
	queue        queue.Queue
	sender       Sender
	name         string
	failed       string
	maxAttempts  int
	retryBackoff time.Duration
	log          *slog.Logger
}

func NewWorker(q queue.Queue, sender Sender, cfg WorkerConfig) *Worker {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	return &Worker{
		queue:        q,
		sender:       sender,
		name:         cfg.Queue,
		failed:       cfg.Queue + ":failed",
		maxAttempts:  cfg.MaxAttempts,
		retryBackoff: cfg.RetryBackoff,
		log:          logger.Log.With("component", "MailDeliveryWorker", "queue", cfg.Queue),
	}
}

// Run processes jobs until ctx is cancelled. Jobs left unacknowledged by a
// previous run are put back first.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("Starting mail delivery worker", "max_attempts", w.maxAttempts)
	if n, err := w.queue.Requeue(ctx, w.name); err != nil {
		w.log.Warn("Failed to recover unacknowledged jobs", "error", err)
	} else if n > 0 {
		w.log.Warn("Recovered unacknowledged jobs", "count", n)
	}
	for {
		if ctx.Err() != nil {
			w.log.Info("Mail delivery worker stopped")
			return nil
		}

		payload, err := w.queue.Dequeue(ctx, w.name, pollTimeout)
		if err != nil {
			if errors.Is(err, queue.ErrEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			w.log.Warn("Dequeue failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(errorBackoff):
			}
			continue
		}

		w.Process(ctx, payload)
	}
}

// Process handles a single payload taken from the queue and acknowledges it
// once its outcome is stored. A job whose retry or park could not be written
// stays unacknowledged and is recovered by the next Run.
func (w *Worker) Process(ctx context.Context, payload []byte) {
	if !w.handle(ctx, payload) {
		return
	}
	if err := w.queue.Ack(context.WithoutCancel(ctx), w.name, payload); err != nil {
		w.log.Error("Failed to acknowledge job", "error", err)
	}
}

// handle reports whether the job's outcome is durable.
func (w *Worker) handle(ctx context.Context, payload []byte) bool {
	var job Job
	if err := json.Unmarshal(payload, &job); err != nil {
		w.log.Error("Discarding undecodable job", "error", err)
		return w.park(ctx, payload)
	}

	err := w.deliver(ctx, &job)
	if err == nil {
		metrics.Notifications.WithLabelValues("sent").Inc()
		w.log.Info("Notification delivered", "job_id", job.ID, "type", job.Type, "attempt", job.Attempts+1)
		return true
	}

	job.Attempts++
	job.LastError = err.Error()
	next, encErr := json.Marshal(job)
	if encErr != nil {
		w.log.Error("Failed to re-encode job", "job_id", job.ID, "error", encErr)
		return w.park(ctx, payload)
	}

	if job.Attempts >= w.maxAttempts {
		metrics.Notifications.WithLabelValues("dropped").Inc()
		w.log.Error("Notification failed permanently", "job_id", job.ID, "attempts", job.Attempts, "error", err)
		return w.park(ctx, next)
	}

	delay := w.retryDelay(job.Attempts)
	metrics.Notifications.WithLabelValues("retried").Inc()
	w.log.Warn("Notification failed, retrying", "job_id", job.ID, "attempts", job.Attempts, "retry_in", delay, "error", err)
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
	if qErr := w.queue.Enqueue(context.WithoutCancel(ctx), w.name, next); qErr != nil {
		w.log.Error("Failed to re-enqueue job", "job_id", job.ID, "error", qErr)
		return false
	}
	return true
}

// retryDelay is the wait before retry number attempts: backoff, 2*backoff, ...
func (w *Worker) retryDelay(attempts int) time.Duration {
	return w.retryBackoff << (attempts - 1)
}

func (w *Worker) deliver(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while sending: %v", r)
		}
	}()
	return w.sender.Send(ctx, job.Message)
}

func (w *Worker) park(ctx context.Context, payload []byte) bool {
	if err := w.queue.Enqueue(context.WithoutCancel(ctx), w.failed, payload); err != nil {
		w.log.Error("Failed to park job", "queue", w.failed, "error", err)
		return false
	}
	return true
}
