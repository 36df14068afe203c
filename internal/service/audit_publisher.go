// Package service holds outbound integrations. The audit publisher pushes
// resource activity events to RabbitMQ; failures are logged and swallowed so
// auditing never interrupts a request.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/duka-bookkeeping/internal/queue"
)

// AuditPublisher publishes ResourceEvents to the resource.activity queue. A
// nil publisher (or an empty URL) disables auditing; Publish then becomes a
// no-op so handlers can call it unconditionally.
type AuditPublisher struct {
	URL string
	Log zerolog.Logger
}

// NewAuditPublisher returns a publisher for the given broker URL, or nil when
// no broker is configured.
func NewAuditPublisher(url string, log zerolog.Logger) *AuditPublisher {
	if url == "" {
		return nil
	}
	return &AuditPublisher{URL: url, Log: log}
}

// Record builds and publishes an event for one resource mutation. It never
// returns an error to the caller; failures only surface in the log.
func (p *AuditPublisher) Record(ctx context.Context, action, resource string, resourceID, userID uint64) {
	if p == nil {
		return
	}
	ev := queue.ResourceEvent{
		EventID:    uuid.NewString(),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		UserID:     userID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.publish(ctx, ev); err != nil {
		p.Log.Warn().Err(err).Str("resource", resource).Str("action", action).Msg("audit publish failed")
	}
}

func (p *AuditPublisher) publish(ctx context.Context, ev queue.ResourceEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.ActivityQueueName, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                      // default exchange
		queue.ActivityQueueName, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}
