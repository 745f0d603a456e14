// Package broker is the gateway to the notification exchange/queue
// topology spec §4.1 describes, built on github.com/rabbitmq/amqp091-go.
package broker

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/arda-labs/notify-core/internal/domain"
)

const (
	ExchangeName             = "notify_exchange"
	SingleNotifyQueueName    = "single_notify_queue"
	SingleNotifyRoutingKey   = "single_notify_routing_key"
	BatchNotifyQueueName     = "batch_notify_queue"
	BatchNotifyRoutingKey    = "batch_notify_routing_key"
)

// Gateway declares the topology once and exposes publish/consume/ack on top
// of a pooled connection. It keeps one long-lived channel per declared
// topology rather than one per publish, matching the pool's connection
// (not channel) granularity.
type Gateway struct {
	pool *Pool
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New acquires a connection from pool, opens a channel, and declares the
// durable direct exchange and its two durable queues bound by fixed
// routing keys.
func New(ctx context.Context, pool *Pool) (*Gateway, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, domain.NewConnectionError("acquire broker connection", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		pool.Release(conn)
		return nil, domain.NewConnectionError("open broker channel", err)
	}

	g := &Gateway{pool: pool, conn: conn, ch: ch}
	if err := g.declareTopology(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gateway) declareTopology() error {
	if err := g.ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return domain.NewConnectionError("declare exchange", err)
	}

	queues := []struct{ name, routingKey string }{
		{SingleNotifyQueueName, SingleNotifyRoutingKey},
		{BatchNotifyQueueName, BatchNotifyRoutingKey},
	}
	for _, q := range queues {
		if _, err := g.ch.QueueDeclare(q.name, true, false, false, false, nil); err != nil {
			return domain.NewConnectionError("declare queue "+q.name, err)
		}
		if err := g.ch.QueueBind(q.name, q.routingKey, ExchangeName, false, nil); err != nil {
			return domain.NewConnectionError("bind queue "+q.name, err)
		}
	}
	return nil
}

// Close releases the underlying channel and returns the connection to the
// pool.
func (g *Gateway) Close() error {
	err := g.ch.Close()
	g.pool.Release(g.conn)
	return err
}

// PublishSingle publishes one SingleNotifyModel to single_notify_routing_key.
func (g *Gateway) PublishSingle(ctx context.Context, m domain.SingleNotifyModel) error {
	return g.publish(ctx, SingleNotifyRoutingKey, m)
}

// PublishBatch publishes one BatchNotifyModel to batch_notify_routing_key.
func (g *Gateway) PublishBatch(ctx context.Context, m domain.BatchNotifyModel) error {
	return g.publish(ctx, BatchNotifyRoutingKey, m)
}

func (g *Gateway) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.NewInternalError("marshal broker payload", err)
	}

	err = g.ch.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		return domain.NewConnectionError("publish", err)
	}
	return nil
}

// Consumer wraps an amqp delivery channel bound to one queue with
// QoS prefetch=1, and the tag it was created under.
type Consumer struct {
	Tag       string
	Deliveries <-chan amqp.Delivery
}

// ConsumeSingle opens a consumer on the single-notify queue, tagged tag,
// with QoS prefetch=1 (global) as spec §4.1 requires.
func (g *Gateway) ConsumeSingle(tag string) (*Consumer, error) {
	return g.consume(SingleNotifyQueueName, tag)
}

// ConsumeBatch opens a consumer on the batch-notify queue.
func (g *Gateway) ConsumeBatch(tag string) (*Consumer, error) {
	return g.consume(BatchNotifyQueueName, tag)
}

func (g *Gateway) consume(queue, tag string) (*Consumer, error) {
	if err := g.ch.Qos(1, 0, true); err != nil {
		return nil, domain.NewConnectionError("set qos", err)
	}
	deliveries, err := g.ch.Consume(queue, tag, false, false, false, false, nil)
	if err != nil {
		return nil, domain.NewConnectionError("consume "+queue, err)
	}
	return &Consumer{Tag: tag, Deliveries: deliveries}, nil
}

// Ack acknowledges one delivery. Called immediately after a message is
// pulled, before processing (at-most-once semantics — see spec §7/§9).
func (g *Gateway) Ack(d amqp.Delivery) error {
	if err := d.Ack(false); err != nil {
		return domain.NewConnectionError("ack", err)
	}
	return nil
}
