package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// Channel часть amqp.Channel, нужная для публикации
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// routingKeys ключи маршрутизации topic exchange по типу уведомления
var routingKeys = map[domain.NotificationKind]string{
	domain.NotificationBookingAssigned: "booking.assigned",
	domain.NotificationNewBooking:      "booking.new",
	domain.NotificationBookingStatus:   "booking.status",
	domain.NotificationBookingCreated:  "booking.created",
	domain.NotificationPartnerApproved: "partner.approved",
}

// RoutingKey возвращает ключ маршрутизации для типа уведомления
func RoutingKey(kind domain.NotificationKind) string {
	if key, ok := routingKeys[kind]; ok {
		return key
	}
	return "notification.other"
}

// BrokerSink публикует уведомления в RabbitMQ
type BrokerSink struct {
	ch       Channel
	exchange string
}

// NewBrokerSink создает sink поверх открытого канала
func NewBrokerSink(ch Channel, exchange string) *BrokerSink {
	return &BrokerSink{ch: ch, exchange: exchange}
}

func (s *BrokerSink) Name() string { return "rabbitmq" }

// Deliver публикует событие в формате JSON
func (s *BrokerSink) Deliver(ctx context.Context, msg Message) error {
	body, err := json.Marshal(NewEvent(msg))
	if err != nil {
		return fmt.Errorf("%w: BrokerSink - marshal: %v", ErrDeliver, err)
	}

	err = s.ch.PublishWithContext(ctx, s.exchange, RoutingKey(msg.Kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: BrokerSink - publish: %v", ErrDeliver, err)
	}
	return nil
}

// Connection соединение с RabbitMQ и канал публикации
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial подключается к брокеру и объявляет topic exchange
func Dial(url, exchange string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Connection{conn: conn, ch: ch}, nil
}

// Channel канал публикации
func (c *Connection) Channel() *amqp.Channel {
	return c.ch
}

// Close закрывает канал и соединение
func (c *Connection) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
