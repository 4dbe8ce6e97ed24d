package conflicts

import "errors"

var (
	// ErrInternal возвращается при ошибке чтения обязательств партнёра
	ErrInternal = errors.New("conflicts: internal error")
)
