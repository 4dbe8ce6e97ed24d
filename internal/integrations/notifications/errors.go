package notifications

import "errors"

var (
	// ErrQueueFull возвращается, когда очередь диспетчера заполнена и сообщение отброшено
	ErrQueueFull = errors.New("notifications: queue is full")

	// ErrStopped возвращается после остановки диспетчера
	ErrStopped = errors.New("notifications: dispatcher is stopped")

	// ErrDeliver возвращается sink при неудачной доставке
	ErrDeliver = errors.New("notifications: delivery failed")
)
