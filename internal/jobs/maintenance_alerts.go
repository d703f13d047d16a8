package jobs

import (
	"context"
	"log"
	"time"

	"dealerstock/internal/models"
	"dealerstock/internal/repositories"
)

const defaultAlertWindow = 7 * 24 * time.Hour

// MaintenanceAlertService surfaces maintenance records whose service date
// is approaching so the workshop can prepare.
type MaintenanceAlertService struct {
	maintenanceRepo repositories.MaintenanceRepository
	vehicleRepo     repositories.VehicleRepository
}

type MaintenanceAlert struct {
	Record         *models.Maintenance
	VehicleDetails string
}

func NewMaintenanceAlertService(maintenanceRepo repositories.MaintenanceRepository,
	vehicleRepo repositories.VehicleRepository) *MaintenanceAlertService {
	return &MaintenanceAlertService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
	}
}

// CheckUpcoming collects scheduled records with a service date inside the window.
func (a *MaintenanceAlertService) CheckUpcoming(ctx context.Context, window time.Duration) ([]MaintenanceAlert, error) {
	if window <= 0 {
		window = defaultAlertWindow
	}
	now := time.Now()

	records, err := a.maintenanceRepo.ListUpcoming(ctx, now)
	if err != nil {
		log.Printf("Failed to list upcoming maintenance: %v", err)
		return nil, err
	}

	var alerts []MaintenanceAlert
	cutoff := now.Add(window)
	for _, record := range records {
		if record.Status != models.MaintenanceStatusScheduled || record.ServiceDate.After(cutoff) {
			continue
		}

		details := record.VehicleID.String()
		if vehicle, err := a.vehicleRepo.GetByID(ctx, record.VehicleID); err == nil {
			details = vehicle.Details()
		} else {
			log.Printf("Failed to get vehicle %s: %v", record.VehicleID.String(), err)
		}

		alerts = append(alerts, MaintenanceAlert{Record: record, VehicleDetails: details})
	}

	return alerts, nil
}

func (a *MaintenanceAlertService) LogUpcomingAlerts(alerts []MaintenanceAlert) {
	if len(alerts) == 0 {
		log.Println("No upcoming maintenance alerts to log")
		return
	}

	log.Printf("Upcoming maintenance alerts: %d", len(alerts))
	for _, alert := range alerts {
		log.Printf("- %s for '%s' due %s",
			alert.Record.MaintenanceType,
			alert.VehicleDetails,
			alert.Record.ServiceDate.Format("2006-01-02"))
	}
}

// ScheduledUpcomingCheck is the entry point used by the job scheduler.
func (a *MaintenanceAlertService) ScheduledUpcomingCheck(ctx context.Context) error {
	log.Println("Starting scheduled maintenance check")

	alerts, err := a.CheckUpcoming(ctx, defaultAlertWindow)
	if err != nil {
		log.Printf("Scheduled maintenance check failed: %v", err)
		return err
	}
	a.LogUpcomingAlerts(alerts)

	log.Println("Scheduled maintenance check completed")
	return nil
}
