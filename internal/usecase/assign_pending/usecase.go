package assign_pending

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

// UseCase use case массового назначения бронирований в статусе pending
type UseCase struct {
	bookingRepo BookingRepository
	assigner    Assigner
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, assigner Assigner, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		assigner:    assigner,
		logger:      logger,
	}
}

// Execute обрабатывает pending бронирования по одному, старые первыми
// Ошибка одного бронирования не останавливает остальные
// Бронирования в статусе unassigned не перебираются повторно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	limit := MaxBatchSize
	trigger := assign_booking.TriggerBulk
	if req != nil {
		if req.Limit < 0 || req.Limit > MaxBatchSize {
			return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, MaxBatchSize)
		}
		if req.Limit > 0 {
			limit = req.Limit
		}
		if req.Trigger != "" {
			trigger = req.Trigger
		}
	}

	uc.logger.Info("AssignPending: trigger=%s limit=%d", trigger, limit)

	bookings, err := uc.bookingRepo.ListByStatus(ctx, domain.StatusPending, limit)
	if err != nil {
		uc.logger.Error("AssignPending: failed to list pending bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list pending bookings: %v", ErrInternal, err)
	}

	resp := &Response{}
	for _, booking := range bookings {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("AssignPending: stopped after %d bookings: %v", resp.Attempted, err)
			break
		}

		resp.Attempted++

		result, err := uc.assigner.Assign(ctx, booking, trigger)
		if err != nil {
			uc.logger.Warn("AssignPending: booking id=%d failed: %v", booking.ID, err)
			resp.Failed++
			continue
		}

		switch result.Outcome {
		case assignment.OutcomeAssigned:
			resp.Assigned++
		case assignment.OutcomeUnassigned:
			resp.Unassigned++
		case assignment.OutcomeLostRace:
			resp.LostRace++
		}
	}

	uc.logger.Info("AssignPending: attempted=%d assigned=%d unassigned=%d lostRace=%d failed=%d",
		resp.Attempted, resp.Assigned, resp.Unassigned, resp.LostRace, resp.Failed)

	return resp, nil
}
