package booking_lifecycle

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings/models"
)

type BookingService interface {
	StartWork(ctx context.Context, bookingID, partnerID int64) (*models.BookingResponse, error)
	CompleteWork(ctx context.Context, bookingID, partnerID int64) (*models.BookingResponse, error)
	Unassign(ctx context.Context, bookingID int64) (*models.BookingResponse, error)
	Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error)
	Rate(ctx context.Context, bookingID, customerID int64, req *models.RateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
