package jobs

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_pending"
)

// Job периодическая задача планировщика
type Job interface {
	Name() string
	Execute(ctx context.Context) error
}

// PendingAssigner массовое назначение ожидающих бронирований
type PendingAssigner interface {
	Execute(ctx context.Context, req *assign_pending.Request) (*assign_pending.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
