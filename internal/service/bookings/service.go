package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит свои бронирования, партнёр назначенные ему, администратор все
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d role=%s", id, actor.UserID, actor.Role)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanView(booking) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// StartWork отмечает начало работы (assigned -> in_progress)
// Доступно только назначенному партнёру
func (s *Service) StartWork(ctx context.Context, bookingID, partnerID int64) (*models.BookingResponse, error) {
	s.logger.Info("StartWork: booking id=%d by partner=%d", bookingID, partnerID)

	booking, err := s.load(ctx, "StartWork", bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsAssignedTo(partnerID) {
		s.logger.Warn("StartWork: partner=%d is not assigned to booking id=%d", partnerID, bookingID)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, "StartWork", booking, domain.StatusInProgress, func() (bool, error) {
		return s.bookingRepo.StartWork(ctx, bookingID, partnerID)
	})
}

// CompleteWork отмечает завершение работы (in_progress -> completed)
// Доступно только назначенному партнёру
func (s *Service) CompleteWork(ctx context.Context, bookingID, partnerID int64) (*models.BookingResponse, error) {
	s.logger.Info("CompleteWork: booking id=%d by partner=%d", bookingID, partnerID)

	booking, err := s.load(ctx, "CompleteWork", bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsAssignedTo(partnerID) {
		s.logger.Warn("CompleteWork: partner=%d is not assigned to booking id=%d", partnerID, bookingID)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, "CompleteWork", booking, domain.StatusCompleted, func() (bool, error) {
		return s.bookingRepo.CompleteWork(ctx, bookingID, partnerID)
	})
}

// Unassign снимает партнёра с бронирования (assigned -> unassigned)
func (s *Service) Unassign(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Unassign: booking id=%d", bookingID)

	booking, err := s.load(ctx, "Unassign", bookingID)
	if err != nil {
		return nil, err
	}

	// из pending в unassigned переводит только подбор
	if booking.Status != domain.StatusAssigned {
		s.logger.Warn("Unassign: booking id=%d is %s, not assigned", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, domain.StatusUnassigned)
	}

	return s.transition(ctx, "Unassign", booking, domain.StatusUnassigned, func() (bool, error) {
		return s.bookingRepo.Unassign(ctx, bookingID)
	})
}

// Cancel отменяет бронирование из любого нетерминального статуса
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d", bookingID)

	var reason *string
	if req != nil && req.Reason != nil {
		if utf8.RuneCountInString(*req.Reason) > domain.MaxCancelReasonLength {
			return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
		}
		reason = req.Reason
	}

	booking, err := s.load(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, "Cancel", booking, domain.StatusCancelled, func() (bool, error) {
		return s.bookingRepo.Cancel(ctx, bookingID, reason)
	})
}

// Rate сохраняет оценку клиента
// Оценить можно только своё завершённое бронирование
func (s *Service) Rate(ctx context.Context, bookingID, customerID int64, req *models.RateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Rate: booking id=%d by customer=%d", bookingID, customerID)

	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxRatingCommentLength {
		return nil, fmt.Errorf("%w: comment must not exceed %d characters", ErrInvalidInput, domain.MaxRatingCommentLength)
	}

	booking, err := s.load(ctx, "Rate", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != customerID {
		s.logger.Warn("Rate: customer=%d does not own booking id=%d", customerID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeRated() {
		s.logger.Warn("Rate: booking id=%d is %s, not completed", bookingID, booking.Status)
		return nil, ErrNotCompleted
	}

	applied, err := s.bookingRepo.Rate(ctx, bookingID, customerID, req.Rating, req.Comment)
	if err != nil {
		s.logger.Error("Rate: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Rate - repository error: %v", ErrInternal, err)
	}
	if !applied {
		return nil, ErrNotCompleted
	}

	s.logger.Info("Rate: booking id=%d rated %d", bookingID, req.Rating)
	return s.reload(ctx, "Rate", bookingID)
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) reload(ctx context.Context, op string, id int64) (*models.BookingResponse, error) {
	booking, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// transition проверяет переход по машине состояний и выполняет условное обновление
// Нулевое число изменённых строк означает, что статус успел измениться
func (s *Service) transition(
	ctx context.Context,
	op string,
	booking *domain.Booking,
	to domain.BookingStatus,
	apply func() (bool, error),
) (*models.BookingResponse, error) {
	if !domain.CanTransition(booking.Status, to) {
		s.logger.Warn("%s: booking id=%d cannot move from %s to %s", op, booking.ID, booking.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	applied, err := apply()
	if err != nil {
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if !applied {
		s.logger.Warn("%s: booking id=%d changed concurrently, %s not applied", op, booking.ID, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	s.logger.Info("%s: booking id=%d moved from %s to %s", op, booking.ID, booking.Status, to)
	s.notifyStatus(ctx, booking, to)

	return s.reload(ctx, op, booking.ID)
}

// notifyStatus сообщает клиенту о смене статуса, ошибки только логируются
func (s *Service) notifyStatus(ctx context.Context, booking *domain.Booking, to domain.BookingStatus) {
	switch to {
	case domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled:
	default:
		return
	}

	payload := map[string]string{"status": string(to)}
	if err := s.notifier.Notify(ctx, booking.CustomerID, domain.NotificationBookingStatus, booking.ID, payload); err != nil {
		s.logger.Warn("notifyStatus: failed to notify customer=%d for booking id=%d: %v", booking.CustomerID, booking.ID, err)
	}
}
