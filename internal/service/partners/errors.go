package partners

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнёр не найден
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrPartnerAlreadyExists возвращается, если email уже занят
	ErrPartnerAlreadyExists = errors.New("partner already exists")

	// ErrInvalidTransition возвращается при недопустимой смене статуса партнёра
	ErrInvalidTransition = errors.New("invalid partner status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
