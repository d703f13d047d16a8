package background

import (
	"context"
	"log"
	"sync"
	"time"

	"dealerstock/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages periodic background jobs
type JobScheduler struct {
	scheduler  gocron.Scheduler
	alertSvc   *jobs.MaintenanceAlertService
	jobsByName map[string]gocron.Job
	mu         sync.RWMutex
}

func NewJobScheduler(alertSvc *jobs.MaintenanceAlertService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		alertSvc:   alertSvc,
		jobsByName: make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.alertSvc.ScheduledUpcomingCheck, context.Background()),
		gocron.WithName("maintenance-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create maintenance alerts job: %v", err)
	} else {
		js.jobsByName["maintenance-alerts"] = alertsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByName))
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobsByName[name] = job
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobsByName[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobsByName, name)
		return err
	}
	return nil
}

// JobNames returns the names of the registered jobs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobsByName))
	for name := range js.jobsByName {
		names = append(names, name)
	}
	return names
}
