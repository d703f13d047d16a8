package services

import (
	"context"
	"log"
	"time"

	"dealerstock/internal/caching"
	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/repositories"

	"github.com/google/uuid"
)

const (
	vehicleCacheTTL = 5 * time.Minute

	// maxMileageBound caps the mileage filter well above any plausible odometer.
	maxMileageBound = 2000000
)

type VehicleServiceInterface interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	GetAllVehicles(ctx context.Context) ([]*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id uuid.UUID, vehicle *models.Vehicle) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
	ClearImageURL(ctx context.Context, id uuid.UUID) error
	FindVehiclesByMake(ctx context.Context, make string) ([]*models.Vehicle, error)
	FindVehiclesByModel(ctx context.Context, model string) ([]*models.Vehicle, error)
	FindVehiclesByYear(ctx context.Context, year int) ([]*models.Vehicle, error)
	FindVehiclesByAvailability(ctx context.Context, available bool) ([]*models.Vehicle, error)
	FindVehiclesByFuelType(ctx context.Context, fuelType string) ([]*models.Vehicle, error)
	FindVehiclesByTransmissionType(ctx context.Context, transmissionType string) ([]*models.Vehicle, error)
	FindVehiclesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*models.Vehicle, error)
	FindVehiclesByMaxMileage(ctx context.Context, maxMileage int) ([]*models.Vehicle, error)
}

type vehicleService struct {
	vehicles repositories.VehicleRepository
	orders   repositories.OrderRepository
	items    repositories.OrderItemRepository
	cache    caching.CacheService
}

func NewVehicleService(vehicles repositories.VehicleRepository, orders repositories.OrderRepository,
	items repositories.OrderItemRepository, cache caching.CacheService) VehicleServiceInterface {
	return &vehicleService{
		vehicles: vehicles,
		orders:   orders,
		items:    items,
		cache:    cache,
	}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}
	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return s.vehicles.GetByID(ctx, vehicle.ID)
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	if s.cache != nil {
		if vehicle, err := s.cache.GetVehicle(ctx, id); err == nil && vehicle != nil {
			return vehicle, nil
		}
	}
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetVehicle(ctx, vehicle, vehicleCacheTTL); err != nil {
			log.Printf("cache vehicle %s: %v", id, err)
		}
	}
	return vehicle, nil
}

func (s *vehicleService) GetAllVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id uuid.UUID, vehicle *models.Vehicle) (*models.Vehicle, error) {
	existing, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}

	vehicle.ID = existing.ID
	vehicle.CreatedAt = existing.CreatedAt
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.vehicles.GetByID(ctx, id)
}

// DeleteVehicle refuses to remove a vehicle that any order or order item
// references; such vehicles are marked unavailable instead of deleted.
func (s *vehicleService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	if _, err := s.vehicles.GetByID(ctx, id); err != nil {
		return err
	}

	orderRefs, err := s.orders.CountByVehicleID(ctx, id)
	if err != nil {
		return err
	}
	if orderRefs > 0 {
		return common.Conflictf("cannot delete vehicle %s: referenced in orders, mark as unavailable instead", id)
	}

	itemRefs, err := s.items.CountByVehicleID(ctx, id)
	if err != nil {
		return err
	}
	if itemRefs > 0 {
		return common.Conflictf("cannot delete vehicle %s: referenced in order items, mark as unavailable instead", id)
	}

	if err := s.vehicles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *vehicleService) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	if err := s.vehicles.SetImageURL(ctx, id, imageURL); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *vehicleService) ClearImageURL(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicles.ClearImageURL(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *vehicleService) FindVehiclesByMake(ctx context.Context, make string) ([]*models.Vehicle, error) {
	return s.vehicles.ListByMake(ctx, make)
}

func (s *vehicleService) FindVehiclesByModel(ctx context.Context, model string) ([]*models.Vehicle, error) {
	return s.vehicles.ListByModel(ctx, model)
}

func (s *vehicleService) FindVehiclesByYear(ctx context.Context, year int) ([]*models.Vehicle, error) {
	return s.vehicles.ListByYear(ctx, year)
}

func (s *vehicleService) FindVehiclesByAvailability(ctx context.Context, available bool) ([]*models.Vehicle, error) {
	return s.vehicles.ListByAvailability(ctx, available)
}

func (s *vehicleService) FindVehiclesByFuelType(ctx context.Context, fuelType string) ([]*models.Vehicle, error) {
	if !models.ValidFuelType(fuelType) {
		return nil, common.Validationf("invalid fuel type: %s", fuelType)
	}
	return s.vehicles.ListByFuelType(ctx, fuelType)
}

func (s *vehicleService) FindVehiclesByTransmissionType(ctx context.Context, transmissionType string) ([]*models.Vehicle, error) {
	if !models.ValidTransmissionType(transmissionType) {
		return nil, common.Validationf("invalid transmission type: %s", transmissionType)
	}
	return s.vehicles.ListByTransmissionType(ctx, transmissionType)
}

func (s *vehicleService) FindVehiclesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*models.Vehicle, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, common.Validationf("invalid price range")
	}
	return s.vehicles.ListByPriceRange(ctx, minPrice, maxPrice)
}

func (s *vehicleService) FindVehiclesByMaxMileage(ctx context.Context, maxMileage int) ([]*models.Vehicle, error) {
	if err := common.ValidatePositiveInteger(maxMileage, "maxMileage", maxMileageBound); err != nil {
		return nil, err
	}
	return s.vehicles.ListByMaxMileage(ctx, maxMileage)
}

func (s *vehicleService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteVehicle(ctx, id); err != nil {
		log.Printf("invalidate vehicle cache %s: %v", id, err)
	}
}

func validateVehicle(vehicle *models.Vehicle) error {
	if vehicle.Make == "" {
		return common.Validationf("make is required")
	}
	if vehicle.Model == "" {
		return common.Validationf("model is required")
	}
	if vehicle.Year < 1900 {
		return common.Validationf("year must be 1900 or later")
	}
	if vehicle.VIN == "" {
		return common.Validationf("vin is required")
	}
	if err := common.ValidatePositiveFloat(vehicle.Price, "price", 10000000); err != nil {
		return err
	}
	if vehicle.FuelType != nil && !models.ValidFuelType(*vehicle.FuelType) {
		return common.Validationf("invalid fuel type: %s", *vehicle.FuelType)
	}
	if vehicle.TransmissionType != nil && !models.ValidTransmissionType(*vehicle.TransmissionType) {
		return common.Validationf("invalid transmission type: %s", *vehicle.TransmissionType)
	}
	return nil
}
