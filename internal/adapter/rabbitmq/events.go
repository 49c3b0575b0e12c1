package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"resto-platform/internal/adapter/logger"
	"resto-platform/internal/interfaces"
)

const refreshExchange = "refresh_fanout"

// publisher broadcasts refresh events to every subscribed screen. The channel
// is fire-and-forget: non-persistent deliveries, no confirms.
type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.RefreshPublisher {
	return &publisher{conn: conn}
}

func (p *publisher) Publish(ctx context.Context, msg interfaces.RefreshMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(refreshExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh event: %w", err)
	}

	err = ch.Publish(refreshExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish refresh event: %w", err)
	}
	return nil
}

// subscriber consumes refresh broadcasts on an exclusive auto-delete queue.
// The subscription lives exactly as long as the caller's context: on cancel
// the queue disappears with the channel, so a departed subscriber never
// accumulates deliveries.
type subscriber struct {
	conn   Connection
	logger logger.Logger
}

func NewSubscriber(conn Connection, lgr logger.Logger) interfaces.RefreshSubscriber {
	return &subscriber{conn: conn, logger: lgr}
}

func (s *subscriber) Subscribe(ctx context.Context, handler interfaces.RefreshHandler) error {
	for {
		err := s.consume(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		s.logger.Error("subscriber_disconnected", "Refresh subscriber disconnected, reconnecting", "", nil, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func (s *subscriber) consume(ctx context.Context, handler interfaces.RefreshHandler) error {
	ch, err := s.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.ExchangeDeclare(refreshExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", refreshExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			var event interfaces.RefreshMessage
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				s.logger.Error("event_parse_failed", "Failed to parse refresh event", "", nil, err)
				continue
			}

			// No delivery guarantee on this channel; handler errors are
			// logged and the stream continues.
			if err := handler(ctx, event); err != nil {
				s.logger.Error("refresh_handler_failed", "Refresh handler returned an error", "", map[string]interface{}{
					"topic": string(event.Topic),
				}, err)
			}
		}
	}
}
