package notifications

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// StoreSink сохраняет уведомление во входящие пользователя
type StoreSink struct {
	repo NotificationRepository
}

// NewStoreSink создает sink поверх репозитория уведомлений
func NewStoreSink(repo NotificationRepository) *StoreSink {
	return &StoreSink{repo: repo}
}

func (s *StoreSink) Name() string { return "store" }

// Deliver записывает уведомление в таблицу notifications
func (s *StoreSink) Deliver(ctx context.Context, msg Message) error {
	title, text := Render(msg.Kind, msg.Payload)

	n := &domain.Notification{
		UserID:           msg.UserID,
		Kind:             msg.Kind,
		Title:            title,
		Description:      text,
		RelatedBookingID: msg.RelatedBookingID(),
		Metadata:         msg.Payload,
	}

	if _, err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("%w: StoreSink - %v", ErrDeliver, err)
	}
	return nil
}
