package assign_pending

import (
	"context"

	assignPending "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_pending"
)

type AssignPendingUseCase interface {
	Execute(ctx context.Context, req *assignPending.Request) (*assignPending.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
