// Package service adapts membership lifecycle changes to RabbitMQ.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/metrics"
	"github.com/iliyamo/fanclub-membership/internal/model"
	"github.com/iliyamo/fanclub-membership/internal/queue"
)

// Publisher sends MembershipEvent messages to queue.MembershipQueue.  It
// dials per publish so a broker outage never holds resources between
// requests; events are best effort.
type Publisher struct {
	url     string
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, timeout: 3 * time.Second, log: log, now: time.Now}
}

// SubscriptionJoined implements membership.Notifier.
func (p *Publisher) SubscriptionJoined(ctx context.Context, s model.Subscription) error {
	return p.Publish(ctx, queue.NewMembershipEvent(queue.TypeSubscriptionJoined, s, p.now()))
}

// SubscriptionCancelled implements membership.Notifier.
func (p *Publisher) SubscriptionCancelled(ctx context.Context, s model.Subscription) error {
	return p.Publish(ctx, queue.NewMembershipEvent(queue.TypeSubscriptionCancelled, s, p.now()))
}

// Publish declares the durable queue and sends ev as a persistent JSON
// message on the default exchange.
func (p *Publisher) Publish(ctx context.Context, ev queue.MembershipEvent) (err error) {
	defer func() {
		metrics.RecordPublish(ev.Type, err)
		if err != nil {
			p.log.Warn().Err(err).Str("event_id", ev.ID).Str("type", ev.Type).Msg("rabbitmq: publish failed")
		}
	}()

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.MembershipQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return ch.PublishWithContext(ctx,
		"",                    // default exchange
		queue.MembershipQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Type:         ev.Type,
			Timestamp:    p.now().UTC(),
			Body:         body,
		},
	)
}

var _ membership.Notifier = (*Publisher)(nil)
