package jobs

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_pending"
)

// AssignPendingJob периодически пытается назначить партнёров бронированиям в статусе pending
type AssignPendingJob struct {
	assigner  PendingAssigner
	batchSize int
	logger    Logger
}

// NewAssignPendingJob создает задачу массового назначения
func NewAssignPendingJob(assigner PendingAssigner, batchSize int, logger Logger) *AssignPendingJob {
	return &AssignPendingJob{
		assigner:  assigner,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (j *AssignPendingJob) Name() string { return "assign-pending" }

// Execute запускает один проход массового назначения
func (j *AssignPendingJob) Execute(ctx context.Context) error {
	resp, err := j.assigner.Execute(ctx, &assign_pending.Request{
		Limit:   j.batchSize,
		Trigger: assign_booking.TriggerScheduler,
	})
	if err != nil {
		return err
	}

	if resp.Attempted > 0 {
		j.logger.Info("AssignPendingJob: attempted=%d assigned=%d unassigned=%d lostRace=%d failed=%d",
			resp.Attempted, resp.Assigned, resp.Unassigned, resp.LostRace, resp.Failed)
	}
	return nil
}
