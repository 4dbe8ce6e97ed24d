package manual_assign

import (
	"context"

	manualAssign "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/manual_assign"
)

type ManualAssignUseCase interface {
	Execute(ctx context.Context, req *manualAssign.Request) (*manualAssign.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
