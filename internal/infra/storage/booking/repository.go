package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/dbmetrics"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/psqlbuilder"
)

const table = "bookings"

// bookingColumns порядок колонок должен совпадать со scanBooking
var bookingColumns = []string{
	"id",
	"customer_id",
	"customer_name",
	"service_type",
	"service_address",
	"ST_X(service_location::geometry) AS service_longitude",
	"ST_Y(service_location::geometry) AS service_latitude",
	"scheduled_date",
	"status",
	"partner_id",
	"partner_name",
	"partner_assigned_at",
	"work_started_at",
	"work_completed_at",
	"cancelled_at",
	"cancellation_reason",
	"price",
	"payment_status",
	"notes",
	"customer_rating",
	"rating_comment",
	"rated_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var location interface{}
	if booking.ServiceLocation != nil {
		location = pointExpr(*booking.ServiceLocation)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"customer_id",
			"customer_name",
			"service_type",
			"service_address",
			"service_location",
			"scheduled_date",
			"status",
			"price",
			"payment_status",
			"notes",
		).
		Values(
			booking.CustomerID,
			booking.CustomerName,
			booking.ServiceType,
			booking.ServiceAddress,
			location,
			booking.ScheduledDate,
			string(booking.Status),
			booking.Price,
			string(booking.PaymentStatus),
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByStatus получает бронирования в указанном статусе, старые первыми
// limit <= 0 означает без ограничения
func (r *Repository) ListByStatus(ctx context.Context, status domain.BookingStatus, limit int) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"status": string(status)}).
		OrderBy("created_at ASC", "id ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByPartnerInWindow получает бронирования партнёра в указанных статусах,
// у которых scheduled_date строго внутри (from, to)
// Бронирования без scheduled_date в выборку не попадают
func (r *Repository) ListByPartnerInWindow(
	ctx context.Context,
	partnerID int64,
	statuses []domain.BookingStatus,
	from, to time.Time,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		Where(squirrel.Gt{"scheduled_date": from}).
		Where(squirrel.Lt{"scheduled_date": to}).
		OrderBy("scheduled_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByPartnerInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPartnerInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Assign атомарно назначает партнёра, только если бронирование ещё ожидает назначения
// Возвращает false, если ни одна строка не изменена (бронирование уже назначено или отменено)
// partner_assigned_at фиксируется только при первом назначении
func (r *Repository) Assign(ctx context.Context, bookingID, partnerID int64, partnerName string) (bool, error) {
	update := psqlbuilder.Update(table).
		Set("partner_id", partnerID).
		Set("partner_name", partnerName).
		Set("status", string(domain.StatusAssigned)).
		Set("partner_assigned_at", squirrel.Expr("COALESCE(partner_assigned_at, NOW())")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SourcesFor(domain.StatusAssigned))})

	return r.execConditional(ctx, "Assign", update)
}

// MarkUnassigned переводит бронирование в unassigned, если оно ещё не назначено
// Повторный вызов для unassigned бронирования безопасен
func (r *Repository) MarkUnassigned(ctx context.Context, bookingID int64) (bool, error) {
	update := psqlbuilder.Update(table).
		Set("status", string(domain.StatusUnassigned)).
		Set("partner_id", nil).
		Set("partner_name", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		Where(squirrel.Eq{"status": statusStrings(domain.PreAssignmentStatuses)})

	return r.execConditional(ctx, "MarkUnassigned", update)
}

// Unassign снимает партнёра с назначенного бронирования (assigned -> unassigned)
func (r *Repository) Unassign(ctx context.Context, bookingID int64) (bool, error) {
	update := psqlbuilder.Update(table).
		Set("status", string(domain.StatusUnassigned)).
		Set("partner_id", nil).
		Set("partner_name", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		Where(squirrel.Eq{"status": string(domain.StatusAssigned)})

	return r.execConditional(ctx, "Unassign", update)
}

// StartWork переводит бронирование в in_progress от имени назначенного партнёра
func (r *Repository) StartWork(ctx context.Context, bookingID, partnerID int64) (bool, error) {
	update := psqlbuilder.Update(table).
		Set("status", string(domain.StatusInProgress)).
		Set("work_started_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SourcesFor(domain.StatusInProgress))})

	return r.execConditional(ctx, "StartWork", update)
}

// CompleteWork переводит бронирование в completed от имени назначенного партнёра
func (r *Repository) CompleteWork(ctx context.Context, bookingID, partnerID int64) (bool, error) {
	update := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCompleted)).
		Set("work_completed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SourcesFor(domain.StatusCompleted))})

	return r.execConditional(ctx, "CompleteWork", update)
}

// Cancel отменяет бронирование из любого нетерминального статуса
func (r *Repository) Cancel(ctx context.Context, bookingID int64, reason *string) (bool, error) {
	update := psqlbuilder.Update(table).
		Set("status", string(domain.StatusCancelled)).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SourcesFor(domain.StatusCancelled))})

	return r.execConditional(ctx, "Cancel", update)
}

// Rate сохраняет оценку клиента для завершённого бронирования
func (r *Repository) Rate(ctx context.Context, bookingID, customerID int64, rating int, comment *string) (bool, error) {
	update := psqlbuilder.Update(table).
		Set("customer_rating", rating).
		Set("rating_comment", comment).
		Set("rated_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID}).
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"status": string(domain.StatusCompleted)})

	return r.execConditional(ctx, "Rate", update)
}

// execConditional выполняет условный UPDATE и сообщает, была ли изменена строка
func (r *Repository) execConditional(ctx context.Context, op string, update squirrel.UpdateBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := update.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var lon, lat sql.NullFloat64
	var createdAt, updatedAt sql.NullTime
	var paymentStatus sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.CustomerName,
		&booking.ServiceType,
		&booking.ServiceAddress,
		&lon,
		&lat,
		&booking.ScheduledDate,
		&booking.Status,
		&booking.PartnerID,
		&booking.PartnerName,
		&booking.PartnerAssignedAt,
		&booking.WorkStartedAt,
		&booking.WorkCompletedAt,
		&booking.CancelledAt,
		&booking.CancellationReason,
		&booking.Price,
		&paymentStatus,
		&booking.Notes,
		&booking.CustomerRating,
		&booking.RatingComment,
		&booking.RatedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lon.Valid && lat.Valid {
		booking.ServiceLocation = &domain.GeoPoint{Longitude: lon.Float64, Latitude: lat.Float64}
	}
	booking.PaymentStatus = domain.PaymentStatus(paymentStatus.String)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// pointExpr выражение PostGIS для точки WGS84
func pointExpr(p domain.GeoPoint) squirrel.Sqlizer {
	return squirrel.Expr("ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography", p.Longitude, p.Latitude)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
