package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

type Publisher interface {
	Publish(ctx context.Context, key string, msg Envelope) error
	Close() error
}

type rmqPublisher struct {
	conn     *amqp091.Connection
	exchange string
}

func NewPublisher(url, exchange string) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		exchange, "topic", true, false, false, false, nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	log.Info().Str("exchange", exchange).Msg("AMQP publisher ready")

	return &rmqPublisher{
		conn:     conn,
		exchange: exchange,
	}, nil
}

func (p *rmqPublisher) Publish(ctx context.Context, key string, msg Envelope) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("enable confirms: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	msgID := msg.Meta.ID
	if msgID == "" {
		msgID = uuid.NewString()
	}
	cid := ""
	if msg.Meta.CorrelationID != nil {
		cid = *msg.Meta.CorrelationID
	}

	confirm, err := ch.PublishWithDeferredConfirmWithContext(
		ctx, p.exchange, key, false, false,
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			MessageId:     msgID,
			CorrelationId: cid,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("wait confirm %s: %w", key, err)
	}
	if !acked {
		return fmt.Errorf("broker nacked %s", key)
	}

	log.Info().Str("key", key).Str("exchange", p.exchange).Msg("Event published")
	return nil
}

func (p *rmqPublisher) Close() error {
	return p.conn.Close()
}

// NopPublisher drops events when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Envelope) error { return nil }

func (NopPublisher) Close() error { return nil }
