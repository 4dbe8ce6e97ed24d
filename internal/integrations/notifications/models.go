package notifications

import (
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// Результаты доставки для метрик
const (
	resultDelivered = "delivered"
	resultFailed    = "failed"
	resultDropped   = "dropped"

	// queueSinkName метка метрики для сообщений, не попавших в очередь
	queueSinkName = "queue"
)

// Message уведомление в очереди диспетчера
type Message struct {
	ID        string
	UserID    int64
	Kind      domain.NotificationKind
	BookingID int64 // 0, если уведомление не относится к бронированию
	Payload   map[string]string
	CreatedAt time.Time
}

// RelatedBookingID ID бронирования или nil
func (m Message) RelatedBookingID() *int64 {
	if m.BookingID <= 0 {
		return nil
	}
	id := m.BookingID
	return &id
}

// Event событие, публикуемое во внешние системы
type Event struct {
	EventID   string            `json:"eventId"`
	Kind      string            `json:"kind"`
	UserID    int64             `json:"userId"`
	BookingID *int64            `json:"bookingId,omitempty"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

// NewEvent собирает событие из сообщения
func NewEvent(msg Message) Event {
	title, text := Render(msg.Kind, msg.Payload)
	return Event{
		EventID:   msg.ID,
		Kind:      string(msg.Kind),
		UserID:    msg.UserID,
		BookingID: msg.RelatedBookingID(),
		Title:     title,
		Text:      text,
		Payload:   msg.Payload,
		CreatedAt: msg.CreatedAt.UTC().Format(domain.DateTimeFormat),
	}
}
