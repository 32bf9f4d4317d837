// Package rabbitmq содержит публикацию событий витрины в RabbitMQ.
//
// События (регистрация аккаунта, просмотр витрины) публикуются в формате
// JSON и носят информационный характер: подключение опционально,
// nil-издатель молча пропускает публикацию.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Routing key событий витрины.
const (
	KeyAccountRegistered = "account.registered"
	KeyStoreViewed       = "store.viewed"
)

// Event — конверт события с типом, временем и произвольной полезной нагрузкой.
type Event struct {
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher публикует события в exchange RabbitMQ.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewPublisher создает Publisher поверх открытого канала.
// Допускается nil-канал: такой Publisher отключён.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// Publish сериализует событие в JSON и отправляет его с заданным routing key.
func (p *Publisher) Publish(routingKey string, payload any) error {
	const op = "rabbitmq.Publish"
	if p == nil || p.ch == nil {
		return nil
	}
	body, err := json.Marshal(Event{
		Kind:       routingKey,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
