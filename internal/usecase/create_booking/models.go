package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID     int64      // ID клиента
	CustomerName   string     // Имя клиента для уведомлений партнёру
	ServiceType    string     // Тип услуги
	ServiceAddress string     // Адрес оказания услуги
	Longitude      *float64   // Координаты адреса (опционально)
	Latitude       *float64   // Координаты адреса (опционально)
	ScheduledDate  *time.Time // Время начала работы (опционально)
	Price          float64    // Стоимость
	Notes          *string    // Дополнительные заметки (опционально)
}

// Response созданное бронирование и итог автоматического назначения
type Response struct {
	Booking *domain.Booking

	// Outcome nil, если подбор не выполнялся или завершился ошибкой
	Outcome *assignment.Outcome

	// AssignmentError причина, по которой подбор не выполнен
	AssignmentError *string
}

// ToDomainBooking конвертирует запрос в новое бронирование в статусе pending
func (r *Request) ToDomainBooking() *domain.Booking {
	b := &domain.Booking{
		CustomerID:     r.CustomerID,
		CustomerName:   r.CustomerName,
		ServiceType:    r.ServiceType,
		ServiceAddress: r.ServiceAddress,
		ScheduledDate:  r.ScheduledDate,
		Status:         domain.StatusPending,
		Price:          r.Price,
		PaymentStatus:  domain.PaymentPending,
		Notes:          r.Notes,
	}
	if r.Longitude != nil && r.Latitude != nil {
		b.ServiceLocation = &domain.GeoPoint{Longitude: *r.Longitude, Latitude: *r.Latitude}
	}
	return b
}
