package assign_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/matching"
)

// Метки метрик для неуспешных попыток
const (
	outcomePrecondition = "precondition_failed"
	outcomeError        = "error"
)

// UseCase use case автоматического назначения партнёра
type UseCase struct {
	bookingRepo  BookingRepository
	matcher      Matcher
	committer    Committer
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	matcher Matcher,
	committer Committer,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		matcher:      matcher,
		committer:    committer,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute загружает бронирование и запускает подбор
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("AssignBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("AssignBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return uc.Assign(ctx, booking, req.Trigger)
}

// Assign подбирает партнёра для уже загруженного бронирования
// Кандидаты перебираются по рангу, пока один не будет зафиксирован
// Кандидат, отпавший при повторной проверке, пропускается
// Если подходящих нет, бронирование переводится в unassigned
func (uc *UseCase) Assign(ctx context.Context, booking *domain.Booking, trigger string) (*Response, error) {
	start := uc.timeProvider.Now()

	resp, err := uc.assign(ctx, booking, trigger)

	outcome := outcomeError
	switch {
	case err == nil:
		outcome = string(resp.Outcome)
	case errors.Is(err, ErrPreconditionFailed), errors.Is(err, ErrInvalidTransition):
		outcome = outcomePrecondition
	}
	uc.metrics.ObserveAssignment(trigger, outcome, uc.timeProvider.Now().Sub(start).Seconds())

	return resp, err
}

func (uc *UseCase) assign(ctx context.Context, booking *domain.Booking, trigger string) (*Response, error) {
	uc.logger.Info("AssignBooking: booking id=%d trigger=%s status=%s", booking.ID, trigger, booking.Status)

	if !booking.IsPreAssignment() {
		uc.logger.Warn("AssignBooking: booking id=%d is %s, not awaiting assignment", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: status=%s", ErrInvalidTransition, booking.Status)
	}

	result, err := uc.matcher.Match(ctx, booking)
	if err != nil {
		if errors.Is(err, matching.ErrPreconditionFailed) {
			uc.logger.Warn("AssignBooking: booking id=%d cannot be matched: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
		}
		uc.logger.Error("AssignBooking: matcher failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: matcher failed: %v", ErrInternal, err)
	}

	resp := &Response{Candidates: len(result.Candidates)}

	for _, candidate := range result.Candidates {
		outcome, err := uc.committer.Commit(ctx, booking, candidate)
		if errors.Is(err, assignment.ErrCandidateRejected) {
			resp.Rejected++
			continue
		}
		if err != nil {
			uc.logger.Error("AssignBooking: commit failed for booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: commit failed: %v", ErrInternal, err)
		}

		resp.Outcome = outcome
		if outcome == assignment.OutcomeAssigned {
			partnerID := candidate.Partner.ID
			distance := candidate.DistanceKm
			resp.PartnerID = &partnerID
			resp.DistanceKm = &distance
		}
		return uc.finish(ctx, booking, resp)
	}

	outcome, err := uc.committer.MarkUnassigned(ctx, booking)
	if err != nil {
		uc.logger.Error("AssignBooking: failed to mark booking id=%d unassigned: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: mark unassigned failed: %v", ErrInternal, err)
	}
	resp.Outcome = outcome

	return uc.finish(ctx, booking, resp)
}

// finish перечитывает бронирование, чтобы вернуть его актуальное состояние
func (uc *UseCase) finish(ctx context.Context, booking *domain.Booking, resp *Response) (*Response, error) {
	uc.logger.Info("AssignBooking: booking id=%d outcome=%s candidates=%d rejected=%d",
		booking.ID, resp.Outcome, resp.Candidates, resp.Rejected)

	fresh, err := uc.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		uc.logger.Warn("AssignBooking: failed to reload booking id=%d: %v", booking.ID, err)
		fresh = booking
	}
	resp.Booking = fresh

	return resp, nil
}
