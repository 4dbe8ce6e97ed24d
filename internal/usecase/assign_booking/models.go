package assign_booking

import (
	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
)

// Источники запуска подбора, используются как метка метрик
const (
	TriggerCreate    = "create"
	TriggerAdmin     = "admin"
	TriggerBulk      = "bulk"
	TriggerScheduler = "scheduler"
)

// Request модель запроса на автоматическое назначение
type Request struct {
	BookingID int64  // ID бронирования
	Trigger   string // Источник запуска
}

// Response итог подбора
type Response struct {
	Booking    *domain.Booking    // Бронирование после попытки назначения
	Outcome    assignment.Outcome // assigned, unassigned или lost_race
	PartnerID  *int64             // Назначенный партнёр
	DistanceKm *float64           // Расстояние до назначенного партнёра
	Candidates int                // Сколько кандидатов прошло фильтры
	Rejected   int                // Сколько кандидатов отпало при повторной проверке
}
