package partners

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/service/partners/models"
)

type PartnerService interface {
	Create(ctx context.Context, req *models.CreatePartnerRequest) (*models.PartnerResponse, error)
	GetByID(ctx context.Context, id int64) (*models.PartnerResponse, error)
	SetAvailability(ctx context.Context, partnerID int64, req *models.UpdateAvailabilityRequest) (*models.PartnerResponse, error)
	UpdateLocation(ctx context.Context, partnerID int64, req *models.UpdateLocationRequest) (*models.PartnerResponse, error)
	Approve(ctx context.Context, partnerID int64) (*models.PartnerResponse, error)
	Deactivate(ctx context.Context, partnerID int64) (*models.PartnerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
