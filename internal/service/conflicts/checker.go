package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// Checker сообщает, занят ли партнёр в заданное окно работы
type Checker struct {
	bookingRepo BookingRepository
	jobDuration time.Duration
}

// NewChecker создает проверку конфликтов расписания
// jobDuration длительность любой работы, из неё строятся окна существующих бронирований
func NewChecker(bookingRepo BookingRepository, jobDuration time.Duration) *Checker {
	if jobDuration <= 0 {
		jobDuration = domain.DefaultJobDuration
	}
	return &Checker{
		bookingRepo: bookingRepo,
		jobDuration: jobDuration,
	}
}

// JobDuration длительность окна работы
func (c *Checker) JobDuration() time.Duration {
	return c.jobDuration
}

// HasConflict возвращает true, если у партнёра есть назначенная или начатая работа,
// пересекающаяся с window
func (c *Checker) HasConflict(ctx context.Context, partnerID int64, window domain.JobWindow) (bool, error) {
	commitments, err := c.Commitments(ctx, partnerID, window)
	if err != nil {
		return false, err
	}
	return Overlaps(window, commitments, c.jobDuration), nil
}

// Commitments загружает бронирования партнёра, которые могут пересечься с window
// Выборка широкая, точное правило применяет Overlaps
func (c *Checker) Commitments(ctx context.Context, partnerID int64, window domain.JobWindow) ([]*domain.Booking, error) {
	from := window.Start.Add(-c.jobDuration)
	bookings, err := c.bookingRepo.ListByPartnerInWindow(ctx, partnerID, domain.ScheduleBlockingStatuses, from, window.End)
	if err != nil {
		return nil, fmt.Errorf("%w: Commitments - partner=%d: %v", ErrInternal, partnerID, err)
	}
	return bookings, nil
}

// Overlaps чистая проверка: пересекается ли window хотя бы с одним блокирующим бронированием
// Бронирования без scheduled_date и в неблокирующих статусах пропускаются
func Overlaps(window domain.JobWindow, commitments []*domain.Booking, jobDuration time.Duration) bool {
	for _, b := range commitments {
		if b == nil || !b.BlocksSchedule() {
			continue
		}
		existing, ok := b.Window(jobDuration)
		if !ok {
			continue
		}
		if window.Overlaps(existing) {
			return true
		}
	}
	return false
}
