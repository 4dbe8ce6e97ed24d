package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/dbmetrics"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/psqlbuilder"
)

const table = "notifications"

// Repository хранилище уведомлений пользователей (in-app inbox)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	metadata := []byte("{}")
	if len(n.Metadata) > 0 {
		raw, err := json.Marshal(n.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: Create - %v", ErrMarshalMetadata, err)
		}
		metadata = raw
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("user_id", "kind", "title", "description", "related_booking_id", "metadata", "is_read").
		Values(n.UserID, string(n.Kind), n.Title, n.Description, n.RelatedBookingID, string(metadata), n.IsRead).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	n.CreatedAt = createdAt.Time

	return n, nil
}
