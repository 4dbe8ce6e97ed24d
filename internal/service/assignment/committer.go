package assignment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/booking"
	partnerRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/partner"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/matching"
)

// Committer фиксирует итог подбора в бронировании и рассылает уведомления
type Committer struct {
	bookingRepo BookingRepository
	partnerRepo PartnerRepository
	checker     ConflictChecker
	notifier    Notifier
	txManager   TransactionManager
	jobDuration time.Duration
	logger      Logger
}

// NewCommitter создает новый экземпляр фиксатора назначений
func NewCommitter(
	bookingRepo BookingRepository,
	partnerRepo PartnerRepository,
	checker ConflictChecker,
	notifier Notifier,
	txManager TransactionManager,
	jobDuration time.Duration,
	logger Logger,
) *Committer {
	if jobDuration <= 0 {
		jobDuration = domain.DefaultJobDuration
	}
	return &Committer{
		bookingRepo: bookingRepo,
		partnerRepo: partnerRepo,
		checker:     checker,
		notifier:    notifier,
		txManager:   txManager,
		jobDuration: jobDuration,
		logger:      logger,
	}
}

// Commit назначает кандидата на бронирование
// Строка партнёра блокируется, доступность и расписание перепроверяются,
// затем выполняется условное обновление бронирования
// Если бронирование уже назначено другим запуском, возвращается OutcomeLostRace без ошибки
// Если кандидат перестал подходить, возвращается ErrCandidateRejected
func (c *Committer) Commit(ctx context.Context, booking *domain.Booking, candidate matching.Candidate) (Outcome, error) {
	window, ok := booking.Window(c.jobDuration)
	if !ok {
		return "", fmt.Errorf("%w: Commit - booking id=%d has no scheduled date", ErrInternal, booking.ID)
	}

	var partner *domain.Partner
	applied := false

	err := c.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		partner, err = c.partnerRepo.LockByID(txCtx, candidate.Partner.ID)
		if err != nil {
			if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
				return fmt.Errorf("%w: partner=%d not found", ErrCandidateRejected, candidate.Partner.ID)
			}
			return fmt.Errorf("%w: Commit - lock partner: %v", ErrInternal, err)
		}

		if !partner.IsAssignable() {
			return fmt.Errorf("%w: partner=%d no longer available", ErrCandidateRejected, partner.ID)
		}

		conflict, err := c.checker.HasConflict(txCtx, partner.ID, window)
		if err != nil {
			return fmt.Errorf("%w: Commit - conflict re-check: %v", ErrInternal, err)
		}
		if conflict {
			return fmt.Errorf("%w: partner=%d became busy", ErrCandidateRejected, partner.ID)
		}

		applied, err = c.bookingRepo.Assign(txCtx, booking.ID, partner.ID, partner.Name)
		if err != nil {
			return fmt.Errorf("%w: Commit - assign: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCandidateRejected) {
			c.logger.Warn("Commit: booking id=%d candidate rejected: %v", booking.ID, err)
			return "", err
		}
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: Commit - transaction: %v", ErrInternal, err)
		}
		c.logger.Error("Commit: failed to assign booking id=%d: %v", booking.ID, err)
		return "", err
	}

	if !applied {
		c.logger.Warn("Commit: booking id=%d lost assignment race, partner=%d not applied", booking.ID, partner.ID)
		return OutcomeLostRace, nil
	}

	c.logger.Info("Commit: booking id=%d assigned to partner=%d distance=%.2fkm", booking.ID, partner.ID, candidate.DistanceKm)
	c.notifyAssigned(ctx, booking, partner)

	return OutcomeAssigned, nil
}

// MarkUnassigned переводит бронирование в unassigned, когда кандидатов нет
// Повторный вызов безопасен, уведомления не отправляются
func (c *Committer) MarkUnassigned(ctx context.Context, booking *domain.Booking) (Outcome, error) {
	applied, err := c.bookingRepo.MarkUnassigned(ctx, booking.ID)
	if err != nil {
		c.logger.Error("MarkUnassigned: failed for booking id=%d: %v", booking.ID, err)
		return "", fmt.Errorf("%w: MarkUnassigned - repository error: %v", ErrInternal, err)
	}

	if !applied {
		c.logger.Warn("MarkUnassigned: booking id=%d is no longer awaiting assignment", booking.ID)
		return OutcomeLostRace, nil
	}

	c.logger.Info("MarkUnassigned: no eligible partner for booking id=%d", booking.ID)
	return OutcomeUnassigned, nil
}

// ManualAssign назначает выбранного администратором партнёра без геопоиска и проверки конфликтов
// Партнёр должен быть активным, доступность не требуется
func (c *Committer) ManualAssign(ctx context.Context, bookingID, partnerID int64) (*domain.Booking, Outcome, error) {
	var booking *domain.Booking
	var partner *domain.Partner
	applied := false

	err := c.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = c.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: ManualAssign - get booking: %v", ErrInternal, err)
		}

		if !booking.IsPreAssignment() {
			return fmt.Errorf("%w: status=%s", ErrInvalidTransition, booking.Status)
		}

		partner, err = c.partnerRepo.LockByID(txCtx, partnerID)
		if err != nil {
			if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
				return ErrPartnerNotFound
			}
			return fmt.Errorf("%w: ManualAssign - lock partner: %v", ErrInternal, err)
		}

		if !partner.IsActive() {
			return fmt.Errorf("%w: partner=%d status=%s", ErrPartnerNotActive, partner.ID, partner.Status)
		}

		applied, err = c.bookingRepo.Assign(txCtx, booking.ID, partner.ID, partner.Name)
		if err != nil {
			return fmt.Errorf("%w: ManualAssign - assign: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		c.logger.Warn("ManualAssign: booking id=%d partner=%d failed: %v", bookingID, partnerID, err)
		return nil, "", err
	}

	if !applied {
		c.logger.Warn("ManualAssign: booking id=%d lost assignment race", bookingID)
		return booking, OutcomeLostRace, nil
	}

	c.logger.Info("ManualAssign: booking id=%d assigned to partner=%d", bookingID, partnerID)
	c.notifyAssigned(ctx, booking, partner)

	booking.Status = domain.StatusAssigned
	booking.PartnerID = &partner.ID
	booking.PartnerName = &partner.Name

	return booking, OutcomeAssigned, nil
}

// notifyAssigned уведомляет клиента и партнёра, ошибки только логируются
func (c *Committer) notifyAssigned(ctx context.Context, booking *domain.Booking, partner *domain.Partner) {
	customerPayload := map[string]string{
		"partnerId":   strconv.FormatInt(partner.ID, 10),
		"partnerName": partner.Name,
	}
	if err := c.notifier.Notify(ctx, booking.CustomerID, domain.NotificationBookingAssigned, booking.ID, customerPayload); err != nil {
		c.logger.Warn("Commit: failed to notify customer=%d for booking id=%d: %v", booking.CustomerID, booking.ID, err)
	}

	partnerPayload := map[string]string{
		"customerId":   strconv.FormatInt(booking.CustomerID, 10),
		"customerName": booking.CustomerName,
	}
	if err := c.notifier.Notify(ctx, partner.ID, domain.NotificationNewBooking, booking.ID, partnerPayload); err != nil {
		c.logger.Warn("Commit: failed to notify partner=%d for booking id=%d: %v", partner.ID, booking.ID, err)
	}
}
