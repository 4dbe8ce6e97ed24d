package notifications

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/integrations/pushgateway"
)

// Sink канал доставки уведомления
type Sink interface {
	Name() string
	Deliver(ctx context.Context, msg Message) error
}

// NotificationRepository хранилище in-app уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// PushClient клиент внешнего push-шлюза
type PushClient interface {
	Push(ctx context.Context, req *pushgateway.PushRequest) error
}

// Metrics учёт доставок по sink
type Metrics interface {
	ObserveNotification(sink, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
