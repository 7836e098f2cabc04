package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err = setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: ch,
	}, nil
}

// ConsumeMediaDelete hands each delivery to handler. Failed deliveries are
// dropped; the outbox row stays retryable and the relay republishes it.
func (c *Consumer) ConsumeMediaDelete(ctx context.Context, handler MediaDeleteHandler) error {
	msgs, err := c.channel.Consume(
		MediaDeleteQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Info("Media delete consumer context cancelled")
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Info("Media delete consumer channel closed")
					return
				}

				var event MediaDeleteEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					hlog.Errorf("Failed to unmarshal media delete event: %v", err)
					d.Nack(false, false)
					continue
				}

				if err := handler.HandleMediaDelete(ctx, &event); err != nil {
					hlog.Errorf("Failed to handle media delete event %s: %v", event.EventID, err)
					d.Nack(false, false)
					continue
				}

				d.Ack(false)
				hlog.CtxInfof(ctx, "Successfully processed media delete event: %s", event.EventID)
			}
		}
	}()

	return nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
