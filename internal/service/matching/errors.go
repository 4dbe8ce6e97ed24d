package matching

import "errors"

var (
	// ErrPreconditionFailed у бронирования нет координат или даты, поиск невозможен
	ErrPreconditionFailed = errors.New("matching: booking is missing location or scheduled date")

	// ErrInternal возвращается при ошибках геопоиска или проверки конфликтов
	ErrInternal = errors.New("matching: internal error")
)
