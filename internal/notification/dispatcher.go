package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"go-contacts-backend/internal/domain"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/metrics"
	"go-contacts-backend/pkg/queue"
)

// Dispatcher implements domain.ContactNotifier by enqueueing mail jobs.
type Dispatcher struct {
	producer queue.Producer
	queue    string
	operator string
}

func NewDispatcher(producer queue.Producer, queueName, operatorMail string) *Dispatcher {
	if queueName == "" {
		queueName = DefaultQueue
	}
	return &Dispatcher{producer: producer, queue: queueName, operator: operatorMail}
}

var _ domain.ContactNotifier = (*Dispatcher)(nil)

func (d *Dispatcher) NotifyCreated(ctx context.Context, contact *domain.Contact) error {
	job := newJob(JobContactCreated, ContactCreatedMessage(d.operator, contact))
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode notification job: %w", err)
	}

	if err := d.producer.Enqueue(ctx, d.queue, payload); err != nil {
		metrics.Notifications.WithLabelValues("enqueue_failed").Inc()
		return fmt.Errorf("failed to enqueue notification on %s: %w", d.queue, err)
	}

	metrics.Notifications.WithLabelValues("enqueued").Inc()
	logger.Log.Info("contact notification enqueued", "queue", d.queue, "job_id", job.ID, "contact_id", contact.ID)
	return nil
}
