package pushgateway

import "errors"

var (
	// ErrNoDevices возвращается, когда у пользователя нет зарегистрированных устройств
	ErrNoDevices = errors.New("pushgateway: user has no registered devices")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pushgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("pushgateway client: invalid response")

	// ErrUnavailable возвращается, когда шлюз недоступен
	ErrUnavailable = errors.New("pushgateway unavailable")
)
