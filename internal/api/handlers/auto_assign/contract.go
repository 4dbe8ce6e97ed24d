package auto_assign

import (
	"context"

	assignBooking "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

type AssignBookingUseCase interface {
	Execute(ctx context.Context, req *assignBooking.Request) (*assignBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
