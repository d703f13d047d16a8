package models

import (
	"time"

	"github.com/google/uuid"
)

// Maintenance status constants
const (
	MaintenanceStatusScheduled  = "SCHEDULED"
	MaintenanceStatusInProgress = "IN_PROGRESS"
	MaintenanceStatusCompleted  = "COMPLETED"
	MaintenanceStatusCancelled  = "CANCELLED"
)

type Maintenance struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	VehicleID        uuid.UUID  `json:"vehicleId" db:"vehicle_id"`
	MaintenanceType  string     `json:"maintenanceType" db:"maintenance_type"`
	ServiceDate      time.Time  `json:"serviceDate" db:"service_date"`
	NextServiceDate  *time.Time `json:"nextServiceDate" db:"next_service_date"`
	Cost             float64    `json:"cost" db:"cost"`
	Description      *string    `json:"description" db:"description"`
	ServiceProvider  *string    `json:"serviceProvider" db:"service_provider"`
	MileageAtService *int       `json:"mileageAtService" db:"mileage_at_service"`
	Status           string     `json:"status" db:"status"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

func ValidMaintenanceStatus(status string) bool {
	switch status {
	case MaintenanceStatusScheduled, MaintenanceStatusInProgress,
		MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	}
	return false
}
