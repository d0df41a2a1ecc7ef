// Package jobs provides scheduled background tasks for the dispatch
// coordinator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. PartnerAssignmentJob - Runs every second to bind available delivery
// partners to unassigned orders.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(assignPendingOrdersHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The assignment job ignores expected business errors (no pending orders,
// no available partners); everything else is logged as a system issue.
package jobs
