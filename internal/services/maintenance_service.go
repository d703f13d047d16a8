package services

import (
	"context"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/repositories"

	"github.com/google/uuid"
)

type MaintenanceServiceInterface interface {
	CreateMaintenance(ctx context.Context, record *models.Maintenance) (*models.Maintenance, error)
	GetMaintenanceByID(ctx context.Context, id uuid.UUID) (*models.Maintenance, error)
	GetAllMaintenance(ctx context.Context) ([]*models.Maintenance, error)
	GetMaintenanceByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*models.Maintenance, error)
	GetMaintenanceByStatus(ctx context.Context, status string) ([]*models.Maintenance, error)
	GetMaintenanceByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Maintenance, error)
	GetUpcomingMaintenance(ctx context.Context, from time.Time) ([]*models.Maintenance, error)
	UpdateMaintenance(ctx context.Context, id uuid.UUID, record *models.Maintenance) (*models.Maintenance, error)
	UpdateMaintenanceStatus(ctx context.Context, id uuid.UUID, status string) (*models.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id uuid.UUID) error
}

type maintenanceService struct {
	maintenance repositories.MaintenanceRepository
	vehicles    repositories.VehicleRepository
}

func NewMaintenanceService(maintenance repositories.MaintenanceRepository,
	vehicles repositories.VehicleRepository) MaintenanceServiceInterface {
	return &maintenanceService{maintenance: maintenance, vehicles: vehicles}
}

func (s *maintenanceService) CreateMaintenance(ctx context.Context, record *models.Maintenance) (*models.Maintenance, error) {
	if err := validateMaintenance(record); err != nil {
		return nil, err
	}
	// The referenced vehicle must exist.
	if _, err := s.vehicles.GetByID(ctx, record.VehicleID); err != nil {
		return nil, err
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		record.Status = models.MaintenanceStatusScheduled
	}
	if err := s.maintenance.Create(ctx, record); err != nil {
		return nil, err
	}
	return s.maintenance.GetByID(ctx, record.ID)
}

func (s *maintenanceService) GetMaintenanceByID(ctx context.Context, id uuid.UUID) (*models.Maintenance, error) {
	return s.maintenance.GetByID(ctx, id)
}

func (s *maintenanceService) GetAllMaintenance(ctx context.Context) ([]*models.Maintenance, error) {
	return s.maintenance.List(ctx)
}

func (s *maintenanceService) GetMaintenanceByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*models.Maintenance, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.maintenance.ListByVehicleID(ctx, vehicleID)
}

func (s *maintenanceService) GetMaintenanceByStatus(ctx context.Context, status string) ([]*models.Maintenance, error) {
	if !models.ValidMaintenanceStatus(status) {
		return nil, common.Validationf("invalid maintenance status: %s", status)
	}
	return s.maintenance.ListByStatus(ctx, status)
}

func (s *maintenanceService) GetMaintenanceByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Maintenance, error) {
	if err := common.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.maintenance.ListByDateRange(ctx, startDate, endDate)
}

func (s *maintenanceService) GetUpcomingMaintenance(ctx context.Context, from time.Time) ([]*models.Maintenance, error) {
	return s.maintenance.ListUpcoming(ctx, from)
}

func (s *maintenanceService) UpdateMaintenance(ctx context.Context, id uuid.UUID, record *models.Maintenance) (*models.Maintenance, error) {
	existing, err := s.maintenance.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateMaintenance(record); err != nil {
		return nil, err
	}

	record.ID = existing.ID
	record.VehicleID = existing.VehicleID
	record.CreatedAt = existing.CreatedAt
	if err := s.maintenance.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.maintenance.GetByID(ctx, id)
}

func (s *maintenanceService) UpdateMaintenanceStatus(ctx context.Context, id uuid.UUID, status string) (*models.Maintenance, error) {
	if !models.ValidMaintenanceStatus(status) {
		return nil, common.Validationf("invalid maintenance status: %s", status)
	}
	if err := s.maintenance.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.maintenance.GetByID(ctx, id)
}

func (s *maintenanceService) DeleteMaintenance(ctx context.Context, id uuid.UUID) error {
	return s.maintenance.Delete(ctx, id)
}

func validateMaintenance(record *models.Maintenance) error {
	if record.MaintenanceType == "" {
		return common.Validationf("maintenanceType is required")
	}
	if record.ServiceDate.IsZero() {
		return common.Validationf("serviceDate is required")
	}
	if record.Cost < 0 {
		return common.Validationf("cost must not be negative")
	}
	if record.Status != "" && !models.ValidMaintenanceStatus(record.Status) {
		return common.Validationf("invalid maintenance status: %s", record.Status)
	}
	return nil
}
