package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	args := m.Called(ctx, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) GetVehicleByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) GetAllVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) UpdateVehicle(ctx context.Context, id uuid.UUID, vehicle *models.Vehicle) (*models.Vehicle, error) {
	args := m.Called(ctx, id, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleService) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockVehicleService) ClearImageURL(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleService) FindVehiclesByMake(ctx context.Context, make string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, make)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) FindVehiclesByModel(ctx context.Context, model string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) FindVehiclesByYear(ctx context.Context, year int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) FindVehiclesByAvailability(ctx context.Context, available bool) ([]*models.Vehicle, error) {
	args := m.Called(ctx, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) FindVehiclesByFuelType(ctx context.Context, fuelType string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, fuelType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) FindVehiclesByTransmissionType(ctx context.Context, transmissionType string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, transmissionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) FindVehiclesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*models.Vehicle, error) {
	args := m.Called(ctx, minPrice, maxPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) FindVehiclesByMaxMileage(ctx context.Context, maxMileage int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, maxMileage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadVehicleImage(ctx context.Context, vehicleID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, vehicleID, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageService) VehicleImageURL(vehicleID uuid.UUID, expiry time.Duration) (string, error) {
	args := m.Called(vehicleID, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockImageService) DeleteVehicleImage(ctx context.Context, vehicleID uuid.UUID) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

func (m *MockImageService) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type VehicleHandlersTestSuite struct {
	suite.Suite
	service  *MockVehicleService
	images   *MockImageService
	handlers *VehicleHandlers
	echo     *echo.Echo
}

func (suite *VehicleHandlersTestSuite) SetupTest() {
	suite.service = &MockVehicleService{}
	suite.images = &MockImageService{}
	suite.handlers = NewVehicleHandlers(suite.service, suite.images)
	suite.echo = echo.New()

	suite.service.Test(suite.T())
	suite.images.Test(suite.T())
}

func (suite *VehicleHandlersTestSuite) TearDownTest() {
	suite.service.AssertExpectations(suite.T())
	suite.images.AssertExpectations(suite.T())
}

func TestVehicleHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(VehicleHandlersTestSuite))
}

func (suite *VehicleHandlersTestSuite) TestDeleteImage_NoContent() {
	id := uuid.New()
	objectName := "vehicles/" + id.String() + ".jpg"
	vehicle := &models.Vehicle{ID: id, Make: "Honda", Model: "Civic", ImageURL: &objectName}

	suite.service.On("GetVehicleByID", mock.Anything, id).Return(vehicle, nil)
	suite.images.On("DeleteVehicleImage", mock.Anything, id).Return(nil)
	suite.service.On("ClearImageURL", mock.Anything, id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/vehicles/"+id.String()+"/image", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := suite.handlers.DeleteImage(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
}

func (suite *VehicleHandlersTestSuite) TestDeleteImage_NoImage() {
	id := uuid.New()
	vehicle := &models.Vehicle{ID: id, Make: "Honda", Model: "Civic"}

	suite.service.On("GetVehicleByID", mock.Anything, id).Return(vehicle, nil)

	req := httptest.NewRequest(http.MethodDelete, "/vehicles/"+id.String()+"/image", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := suite.handlers.DeleteImage(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	suite.images.AssertNotCalled(suite.T(), "DeleteVehicleImage", mock.Anything, id)
}

func (suite *VehicleHandlersTestSuite) TestDeleteImage_MissingVehicle() {
	id := uuid.New()

	suite.service.On("GetVehicleByID", mock.Anything, id).
		Return(nil, common.NotFoundf("vehicle not found with id: %s", id))

	req := httptest.NewRequest(http.MethodDelete, "/vehicles/"+id.String()+"/image", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := suite.handlers.DeleteImage(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}
