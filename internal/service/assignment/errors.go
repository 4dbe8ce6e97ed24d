package assignment

import "errors"

var (
	// ErrCandidateRejected кандидат перестал подходить к моменту фиксации, нужно пробовать следующего
	ErrCandidateRejected = errors.New("assignment: candidate rejected on re-check")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPartnerNotFound возвращается, когда партнёр не найден
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrPartnerNotActive возвращается при ручном назначении неактивного партнёра
	ErrPartnerNotActive = errors.New("partner is not active")

	// ErrInvalidTransition бронирование уже вышло из статуса ожидания назначения
	ErrInvalidTransition = errors.New("booking is not awaiting assignment")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("assignment: internal error")
)
