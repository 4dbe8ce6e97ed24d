package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	assigner     Assigner
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	assigner Assigner,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		assigner:     assigner,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование в статусе pending и сразу запускает подбор партнёра
// Ошибка подбора не отменяет создание: бронирование остаётся pending
// и может быть назначено позже массовым запуском или администратором
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	uc.logger.Info("CreateBooking: customer=%d, serviceType=%s", req.CustomerID, req.ServiceType)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем бронирование
	created, err := uc.bookingRepo.Create(ctx, req.ToDomainBooking())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	payload := map[string]string{"customerName": created.CustomerName}
	if err := uc.notifier.Notify(ctx, created.CustomerID, domain.NotificationBookingCreated, created.ID, payload); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify customer=%d: %v", created.CustomerID, err)
	}

	// 3. Подбираем партнёра
	resp := &Response{Booking: created}

	result, err := uc.assigner.Assign(ctx, created, assign_booking.TriggerCreate)
	if err != nil {
		uc.logger.Warn("CreateBooking: booking id=%d left pending, assignment failed: %v", created.ID, err)
		reason := err.Error()
		resp.AssignmentError = &reason
		return resp, nil
	}

	outcome := result.Outcome
	resp.Outcome = &outcome
	if result.Booking != nil {
		resp.Booking = result.Booking
	}

	return resp, nil
}
