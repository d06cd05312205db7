package background

import (
	"context"
	"log"
	"time"

	"modamart/internal/jobs"
	"modamart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the recurring background work: keeping seller dashboards
// warm and exporting the nightly history report.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	dashboardSvc services.DashboardService
	exporter     *jobs.HistoryReportExporter
}

func NewJobScheduler(dashboardSvc services.DashboardService, exporter *jobs.HistoryReportExporter) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		dashboardSvc: dashboardSvc,
		exporter:     exporter,
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(js.refreshDashboards, context.Background()),
		gocron.WithName("seller-dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	}

	// 00:30 so the previous day is fully closed before the export runs.
	if _, err := js.scheduler.NewJob(
		gocron.CronJob("30 0 * * *", false),
		gocron.NewTask(js.exportHistoryReport, context.Background()),
		gocron.WithName("history-report-export"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		log.Printf("Failed to create history export job: %v", err)
	}
}

func (js *JobScheduler) refreshDashboards(ctx context.Context) error {
	if err := js.dashboardSvc.RefreshAll(ctx); err != nil {
		log.Printf("Dashboard refresh failed: %v", err)
		return err
	}
	return nil
}

func (js *JobScheduler) exportHistoryReport(ctx context.Context) error {
	if err := js.exporter.ExportPreviousDay(ctx); err != nil {
		log.Printf("History report export failed: %v", err)
		return err
	}
	return nil
}
