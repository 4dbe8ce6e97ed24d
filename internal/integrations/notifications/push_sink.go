package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/integrations/pushgateway"
)

// PushSink отправляет уведомление на устройства пользователя через push-шлюз
type PushSink struct {
	client PushClient
}

// NewPushSink создает sink поверх клиента push-шлюза
func NewPushSink(client PushClient) *PushSink {
	return &PushSink{client: client}
}

func (s *PushSink) Name() string { return "push" }

// Deliver отправляет событие в push-шлюз
// Отсутствие устройств у пользователя не считается ошибкой
func (s *PushSink) Deliver(ctx context.Context, msg Message) error {
	event := NewEvent(msg)

	err := s.client.Push(ctx, &pushgateway.PushRequest{
		EventID:   event.EventID,
		UserID:    event.UserID,
		Kind:      event.Kind,
		Title:     event.Title,
		Body:      event.Text,
		BookingID: event.BookingID,
	})
	if errors.Is(err, pushgateway.ErrNoDevices) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: PushSink - %v", ErrDeliver, err)
	}
	return nil
}
