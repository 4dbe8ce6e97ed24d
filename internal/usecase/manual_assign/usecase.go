package manual_assign

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case ручного назначения партнёра администратором
// Геопоиск и проверка расписания не выполняются
type UseCase struct {
	committer Committer
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(committer Committer, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		committer: committer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute назначает партнёра на бронирование
// Ошибки сервиса назначения возвращаются без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.BookingID <= 0 || req.PartnerID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and partnerID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("ManualAssign: booking id=%d partner=%d", req.BookingID, req.PartnerID)

	start := time.Now()
	booking, outcome, err := uc.committer.ManualAssign(ctx, req.BookingID, req.PartnerID)
	if err != nil {
		uc.metrics.ObserveAssignment(trigger, "error", time.Since(start).Seconds())
		return nil, err
	}
	uc.metrics.ObserveAssignment(trigger, string(outcome), time.Since(start).Seconds())

	return &Response{Booking: booking, Outcome: outcome}, nil
}
