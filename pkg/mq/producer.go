package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	if err := setupTopology(ch); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return producer, nil
}

// setupTopology 声明exchange和queue, shared by producer and consumer
func setupTopology(ch *amqp091.Channel) error {
	err := ch.ExchangeDeclare(
		MediaEventExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare media event exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		MediaDeleteQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare media delete queue: %w", err)
	}

	err = ch.QueueBind(
		MediaDeleteQueue,
		MediaDeleteRoutingKey,
		MediaEventExchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to bind media delete queue: %w", err)
	}
	return nil
}

func (p *Producer) PublishMediaDelete(ctx context.Context, event *MediaDeleteEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal media delete event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		MediaEventExchange,
		MediaDeleteRoutingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish media delete event: %w", err)
	}

	hlog.CtxInfof(ctx, "Published media delete event: %+v", event)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
