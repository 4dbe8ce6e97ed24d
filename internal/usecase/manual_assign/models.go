package manual_assign

import (
	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
)

// trigger метка метрик ручного назначения
const trigger = "manual"

// Request модель запроса на ручное назначение
type Request struct {
	BookingID int64 // ID бронирования
	PartnerID int64 // ID выбранного администратором партнёра
}

// Response итог ручного назначения
type Response struct {
	Booking *domain.Booking
	Outcome assignment.Outcome
}
