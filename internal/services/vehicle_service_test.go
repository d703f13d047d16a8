package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) WithTx(tx pgx.Tx) repositories.VehicleRepository {
	return m
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]*models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockVehicleRepository) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockVehicleRepository) ClearImageURL(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) ListByMake(ctx context.Context, make string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, make)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByModel(ctx context.Context, model string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByYear(ctx context.Context, year int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByAvailability(ctx context.Context, available bool) ([]*models.Vehicle, error) {
	args := m.Called(ctx, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByFuelType(ctx context.Context, fuelType string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, fuelType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByTransmissionType(ctx context.Context, transmissionType string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, transmissionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*models.Vehicle, error) {
	args := m.Called(ctx, minPrice, maxPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByMaxMileage(ctx context.Context, maxMileage int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, maxMileage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) WithTx(tx pgx.Tx) repositories.OrderRepository {
	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status string) ([]*models.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Order, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateTotal(ctx context.Context, id uuid.UUID, totalAmount float64) error {
	args := m.Called(ctx, id, totalAmount)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) CountByVehicleID(ctx context.Context, vehicleID uuid.UUID) (int, error) {
	args := m.Called(ctx, vehicleID)
	return args.Int(0), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) WithTx(tx pgx.Tx) repositories.OrderItemRepository {
	return m
}

func (m *MockOrderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) ListDetailedByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderItemDetail), args.Error(1)
}

func (m *MockOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderItemRepository) CountByVehicleID(ctx context.Context, vehicleID uuid.UUID) (int, error) {
	args := m.Called(ctx, vehicleID)
	return args.Int(0), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockCacheService) SetVehicle(ctx context.Context, vehicle *models.Vehicle, ttl time.Duration) error {
	args := m.Called(ctx, vehicle, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

func (m *MockCacheService) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetail), args.Error(1)
}

func (m *MockCacheService) SetOrderDetail(ctx context.Context, detail *models.OrderDetail, ttl time.Duration) error {
	args := m.Called(ctx, detail, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteOrderDetail(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type VehicleServiceTestSuite struct {
	suite.Suite
	vehicles *MockVehicleRepository
	orders   *MockOrderRepository
	items    *MockOrderItemRepository
	cache    *MockCacheService
	service  VehicleServiceInterface
	ctx      context.Context
}

func (suite *VehicleServiceTestSuite) SetupTest() {
	suite.vehicles = &MockVehicleRepository{}
	suite.orders = &MockOrderRepository{}
	suite.items = &MockOrderItemRepository{}
	suite.cache = &MockCacheService{}
	suite.service = NewVehicleService(suite.vehicles, suite.orders, suite.items, suite.cache)
	suite.ctx = context.Background()

	suite.vehicles.Test(suite.T())
	suite.orders.Test(suite.T())
	suite.items.Test(suite.T())
	suite.cache.Test(suite.T())
}

func (suite *VehicleServiceTestSuite) TearDownTest() {
	suite.vehicles.AssertExpectations(suite.T())
	suite.orders.AssertExpectations(suite.T())
	suite.items.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func TestVehicleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VehicleServiceTestSuite))
}

func validTestVehicle() *models.Vehicle {
	return &models.Vehicle{
		ID:        uuid.New(),
		Make:      "Honda",
		Model:     "Civic",
		Year:      2023,
		VIN:       "1HGBH41JXMN109186",
		Price:     24000,
		Available: true,
	}
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_Success() {
	vehicle := validTestVehicle()

	suite.vehicles.On("Create", suite.ctx, vehicle).Return(nil)
	suite.vehicles.On("GetByID", suite.ctx, vehicle.ID).Return(vehicle, nil)

	created, err := suite.service.CreateVehicle(suite.ctx, vehicle)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), vehicle.VIN, created.VIN)
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_MissingVIN() {
	vehicle := validTestVehicle()
	vehicle.VIN = ""

	created, err := suite.service.CreateVehicle(suite.ctx, vehicle)
	assert.Nil(suite.T(), created)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *VehicleServiceTestSuite) TestCreateVehicle_InvalidFuelType() {
	vehicle := validTestVehicle()
	fuel := "COAL"
	vehicle.FuelType = &fuel

	created, err := suite.service.CreateVehicle(suite.ctx, vehicle)
	assert.Nil(suite.T(), created)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *VehicleServiceTestSuite) TestGetVehicleByID_CacheHit() {
	vehicle := validTestVehicle()

	suite.cache.On("GetVehicle", suite.ctx, vehicle.ID).Return(vehicle, nil)

	got, err := suite.service.GetVehicleByID(suite.ctx, vehicle.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), vehicle, got)
	suite.vehicles.AssertNotCalled(suite.T(), "GetByID", suite.ctx, vehicle.ID)
}

func (suite *VehicleServiceTestSuite) TestGetVehicleByID_CacheMissFallsThrough() {
	vehicle := validTestVehicle()

	suite.cache.On("GetVehicle", suite.ctx, vehicle.ID).Return(nil, nil)
	suite.vehicles.On("GetByID", suite.ctx, vehicle.ID).Return(vehicle, nil)
	suite.cache.On("SetVehicle", suite.ctx, vehicle, vehicleCacheTTL).Return(nil)

	got, err := suite.service.GetVehicleByID(suite.ctx, vehicle.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), vehicle, got)
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_ReferencedByOrders() {
	vehicle := validTestVehicle()

	suite.vehicles.On("GetByID", suite.ctx, vehicle.ID).Return(vehicle, nil)
	suite.orders.On("CountByVehicleID", suite.ctx, vehicle.ID).Return(2, nil)

	err := suite.service.DeleteVehicle(suite.ctx, vehicle.ID)
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
	suite.vehicles.AssertNotCalled(suite.T(), "Delete", suite.ctx, vehicle.ID)
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_ReferencedByOrderItems() {
	vehicle := validTestVehicle()

	suite.vehicles.On("GetByID", suite.ctx, vehicle.ID).Return(vehicle, nil)
	suite.orders.On("CountByVehicleID", suite.ctx, vehicle.ID).Return(0, nil)
	suite.items.On("CountByVehicleID", suite.ctx, vehicle.ID).Return(1, nil)

	err := suite.service.DeleteVehicle(suite.ctx, vehicle.ID)
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
	suite.vehicles.AssertNotCalled(suite.T(), "Delete", suite.ctx, vehicle.ID)
}

func (suite *VehicleServiceTestSuite) TestDeleteVehicle_Unreferenced() {
	vehicle := validTestVehicle()

	suite.vehicles.On("GetByID", suite.ctx, vehicle.ID).Return(vehicle, nil)
	suite.orders.On("CountByVehicleID", suite.ctx, vehicle.ID).Return(0, nil)
	suite.items.On("CountByVehicleID", suite.ctx, vehicle.ID).Return(0, nil)
	suite.vehicles.On("Delete", suite.ctx, vehicle.ID).Return(nil)
	suite.cache.On("DeleteVehicle", suite.ctx, vehicle.ID).Return(nil)

	err := suite.service.DeleteVehicle(suite.ctx, vehicle.ID)
	assert.NoError(suite.T(), err)
}

func (suite *VehicleServiceTestSuite) TestFindVehiclesByPriceRange_Invalid() {
	vehicles, err := suite.service.FindVehiclesByPriceRange(suite.ctx, 30000, 10000)
	assert.Nil(suite.T(), vehicles)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *VehicleServiceTestSuite) TestFindVehiclesByMaxMileage_NotPositive() {
	vehicles, err := suite.service.FindVehiclesByMaxMileage(suite.ctx, 0)
	assert.Nil(suite.T(), vehicles)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *VehicleServiceTestSuite) TestFindVehiclesByMaxMileage_ExceedsBound() {
	vehicles, err := suite.service.FindVehiclesByMaxMileage(suite.ctx, maxMileageBound+1)
	assert.Nil(suite.T(), vehicles)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
	suite.vehicles.AssertNotCalled(suite.T(), "ListByMaxMileage", suite.ctx, maxMileageBound+1)
}

func (suite *VehicleServiceTestSuite) TestClearImageURL_InvalidatesCache() {
	id := uuid.New()

	suite.vehicles.On("ClearImageURL", suite.ctx, id).Return(nil)
	suite.cache.On("DeleteVehicle", suite.ctx, id).Return(nil)

	err := suite.service.ClearImageURL(suite.ctx, id)
	assert.NoError(suite.T(), err)
}
