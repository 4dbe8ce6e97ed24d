package notification

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")

	// ErrMarshalMetadata возвращается, если метаданные не удалось сериализовать
	ErrMarshalMetadata = errors.New("notification.repository: failed to marshal metadata")
)
