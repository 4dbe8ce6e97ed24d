package pushgateway

// PushRequest модель push-уведомления для шлюза
type PushRequest struct {
	EventID   string `json:"event_id"`
	UserID    int64  `json:"user_id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	BookingID *int64 `json:"booking_id,omitempty"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
