package manual_assign

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manual_assign: invalid input data")
)
