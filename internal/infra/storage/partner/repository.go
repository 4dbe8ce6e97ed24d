package partner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/dbmetrics"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/psqlbuilder"
)

const (
	table = "partners"

	// pgUniqueViolation код ошибки PostgreSQL при нарушении уникальности
	pgUniqueViolation = "23505"
)

var partnerColumns = []string{
	"id",
	"name",
	"email",
	"ST_X(location::geometry) AS longitude",
	"ST_Y(location::geometry) AS latitude",
	"status",
	"availability",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с партнёрами и их геопозицией
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория партнёров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового партнёра
func (r *Repository) Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var location interface{}
	if partner.Location != nil {
		location = pointExpr(*partner.Location)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "email", "location", "status", "availability").
		Values(partner.Name, partner.Email, location, string(partner.Status), partner.Availability).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&partner.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	partner.CreatedAt = createdAt.Time
	partner.UpdatedAt = updatedAt.Time

	return partner, nil
}

// GetByID получает партнёра по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	return r.getByID(ctx, "GetByID", id, false)
}

// LockByID получает партнёра по ID и блокирует его строку до конца транзакции
// Вне транзакции эквивалентен GetByID
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Partner, error) {
	return r.getByID(ctx, "LockByID", id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, op string, id int64, forUpdate bool) (*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(partnerColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	partner, err := scanPartner(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan partner: %v", ErrScanRow, op, err)
	}

	return partner, nil
}

// FindNearby возвращает активных и доступных партнёров в радиусе от точки
// Порядок: по расстоянию, при равенстве по ID
func (r *Repository) FindNearby(ctx context.Context, point domain.GeoPoint, radiusMeters float64) ([]domain.PartnerCandidate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(partnerColumns...).
		Column(squirrel.Expr(
			"ST_Distance(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography) / 1000 AS distance_km",
			point.Longitude, point.Latitude,
		)).
		From(table).
		Where(squirrel.Eq{"status": string(domain.PartnerActive)}).
		Where(squirrel.Eq{"availability": true}).
		Where(squirrel.NotEq{"location": nil}).
		Where(squirrel.Expr(
			"ST_DWithin(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
			point.Longitude, point.Latitude, radiusMeters,
		)).
		OrderBy("distance_km ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindNearby - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindNearby - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates := make([]domain.PartnerCandidate, 0)
	for rows.Next() {
		var lon, lat sql.NullFloat64
		var createdAt, updatedAt sql.NullTime
		var c domain.PartnerCandidate

		err := rows.Scan(
			&c.Partner.ID,
			&c.Partner.Name,
			&c.Partner.Email,
			&lon,
			&lat,
			&c.Partner.Status,
			&c.Partner.Availability,
			&createdAt,
			&updatedAt,
			&c.DistanceKm,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FindNearby - scan row: %v", ErrScanRow, err)
		}

		if lon.Valid && lat.Valid {
			c.Partner.Location = &domain.GeoPoint{Longitude: lon.Float64, Latitude: lat.Float64}
		}
		c.Partner.CreatedAt = createdAt.Time
		c.Partner.UpdatedAt = updatedAt.Time

		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindNearby - rows error: %v", ErrScanRow, err)
	}

	return candidates, nil
}

// UpdateAvailability переключает доступность партнёра
func (r *Repository) UpdateAvailability(ctx context.Context, id int64, availability bool) error {
	update := psqlbuilder.Update(table).
		Set("availability", availability).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.execUpdate(ctx, "UpdateAvailability", update)
}

// UpdateStatus меняет статус учётной записи партнёра
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PartnerStatus) error {
	update := psqlbuilder.Update(table).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.execUpdate(ctx, "UpdateStatus", update)
}

// UpdateLocation сохраняет текущее местоположение партнёра
func (r *Repository) UpdateLocation(ctx context.Context, id int64, point domain.GeoPoint) error {
	update := psqlbuilder.Update(table).
		Set("location", pointExpr(point)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.execUpdate(ctx, "UpdateLocation", update)
}

func (r *Repository) execUpdate(ctx context.Context, op string, update squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrPartnerNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPartner(row rowScanner) (*domain.Partner, error) {
	var partner domain.Partner
	var lon, lat sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&partner.ID,
		&partner.Name,
		&partner.Email,
		&lon,
		&lat,
		&partner.Status,
		&partner.Availability,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lon.Valid && lat.Valid {
		partner.Location = &domain.GeoPoint{Longitude: lon.Float64, Latitude: lat.Float64}
	}
	partner.CreatedAt = createdAt.Time
	partner.UpdatedAt = updatedAt.Time

	return &partner, nil
}

// pointExpr выражение PostGIS для точки WGS84
func pointExpr(p domain.GeoPoint) squirrel.Sqlizer {
	return squirrel.Expr("ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography", p.Longitude, p.Latitude)
}
