package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PartnerAssignmentJob manages the scheduled matching of delivery partners
// with orders. Runs every second so that orders placed while the whole fleet
// was busy get a partner as soon as one frees up.
type PartnerAssignmentJob struct {
	handler commands.AssignPendingOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPartnerAssignmentJob creates a new job for the assignment sweep.
func NewPartnerAssignmentJob(
	handler commands.AssignPendingOrdersCommandHandler,
	logger *slog.Logger,
) *PartnerAssignmentJob {
	return &PartnerAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "partner_assignment_job"),
	}
}

// Start begins the partner assignment job to run every second.
func (j *PartnerAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignPendingOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty order book or a busy fleet is the normal idle state.
			if !errors.Is(err, commands.ErrNoPendingOrders) &&
				!errors.Is(err, commands.ErrNoAvailablePartners) {
				j.logger.ErrorContext(ctx, "Partner assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Partner assignment job started (running every second)")
	return nil
}

// Stop stops the partner assignment job.
func (j *PartnerAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Partner assignment job stopped")
}
