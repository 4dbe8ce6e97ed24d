package assign_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("assign_booking: booking not found")

	// ErrPreconditionFailed у бронирования нет координат или даты
	ErrPreconditionFailed = errors.New("assign_booking: booking is missing location or scheduled date")

	// ErrInvalidTransition бронирование не ожидает назначения
	ErrInvalidTransition = errors.New("assign_booking: booking is not awaiting assignment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_booking: internal error")
)
