package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type VehicleRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      VehicleRepository
	vehicleID uuid.UUID
	context   context.Context
}

func (suite *VehicleRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewVehicleRepo(mock)
	suite.vehicleID = uuid.New()
	suite.context = context.Background()
}

func (suite *VehicleRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestVehicleRepoTestSuite(t *testing.T) {
	suite.Run(t, new(VehicleRepoTestSuite))
}

func (suite *VehicleRepoTestSuite) vehicleRow(v *models.Vehicle) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "make", "model", "vehicle_year", "vin",
		"color", "price", "mileage", "fuel_type", "transmission_type", "engine_size",
		"available", "acquisition_date", "description", "image_url", "created_at",
		"updated_at"}).
		AddRow(v.ID, v.Make, v.Model, v.Year, v.VIN, v.Color, v.Price, v.Mileage,
			v.FuelType, v.TransmissionType, v.EngineSize, v.Available,
			v.AcquisitionDate, v.Description, v.ImageURL, v.CreatedAt, v.UpdatedAt)
}

func (suite *VehicleRepoTestSuite) TestCreate_Success() {
	vehicle := &models.Vehicle{
		ID:        suite.vehicleID,
		Make:      "Honda",
		Model:     "Civic",
		Year:      2023,
		VIN:       "1HGBH41JXMN109186",
		Price:     24000,
		Available: true,
	}

	suite.mock.ExpectExec(`INSERT INTO vehicles`).
		WithArgs(vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.VIN,
			vehicle.Color, vehicle.Price, vehicle.Mileage, vehicle.FuelType,
			vehicle.TransmissionType, vehicle.EngineSize, vehicle.Available,
			vehicle.AcquisitionDate, vehicle.Description, vehicle.ImageURL).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, vehicle)
	assert.NoError(suite.T(), err)
}

func (suite *VehicleRepoTestSuite) TestCreate_DuplicateVIN() {
	vehicle := &models.Vehicle{
		ID:        suite.vehicleID,
		Make:      "Honda",
		Model:     "Civic",
		Year:      2023,
		VIN:       "1HGBH41JXMN109186",
		Price:     24000,
		Available: true,
	}

	suite.mock.ExpectExec(`INSERT INTO vehicles`).
		WithArgs(vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.VIN,
			vehicle.Color, vehicle.Price, vehicle.Mileage, vehicle.FuelType,
			vehicle.TransmissionType, vehicle.EngineSize, vehicle.Available,
			vehicle.AcquisitionDate, vehicle.Description, vehicle.ImageURL).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := suite.repo.Create(suite.context, vehicle)
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
}

func (suite *VehicleRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	vehicle := &models.Vehicle{
		ID:        suite.vehicleID,
		Make:      "Honda",
		Model:     "Civic",
		Year:      2023,
		VIN:       "1HGBH41JXMN109186",
		Price:     24000,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	suite.mock.ExpectQuery(`SELECT (.+) FROM vehicles WHERE id = \$1`).
		WithArgs(suite.vehicleID).
		WillReturnRows(suite.vehicleRow(vehicle))

	got, err := suite.repo.GetByID(suite.context, suite.vehicleID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Honda Civic (2023)", got.Details())
}

func (suite *VehicleRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM vehicles WHERE id = \$1`).
		WithArgs(suite.vehicleID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	got, err := suite.repo.GetByID(suite.context, suite.vehicleID)
	assert.Nil(suite.T(), got)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *VehicleRepoTestSuite) TestSetAvailability_Success() {
	suite.mock.ExpectExec(`UPDATE vehicles SET available = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(false, suite.vehicleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetAvailability(suite.context, suite.vehicleID, false)
	assert.NoError(suite.T(), err)
}

func (suite *VehicleRepoTestSuite) TestSetAvailability_NotFound() {
	suite.mock.ExpectExec(`UPDATE vehicles SET available = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(true, suite.vehicleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetAvailability(suite.context, suite.vehicleID, true)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *VehicleRepoTestSuite) TestListByPriceRange() {
	now := time.Now()
	vehicle := &models.Vehicle{
		ID:        suite.vehicleID,
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      2022,
		VIN:       "JTDBR32E720045678",
		Price:     21000,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	suite.mock.ExpectQuery(`SELECT (.+) FROM vehicles WHERE price BETWEEN \$1 AND \$2 ORDER BY price ASC`).
		WithArgs(15000.0, 25000.0).
		WillReturnRows(suite.vehicleRow(vehicle))

	vehicles, err := suite.repo.ListByPriceRange(suite.context, 15000, 25000)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), vehicles, 1)
	assert.Equal(suite.T(), 21000.0, vehicles[0].Price)
}

func (suite *VehicleRepoTestSuite) TestSetImageURL() {
	suite.mock.ExpectExec(`UPDATE vehicles SET image_url = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("vehicles/abc.jpg", suite.vehicleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetImageURL(suite.context, suite.vehicleID, "vehicles/abc.jpg")
	assert.NoError(suite.T(), err)
}

func (suite *VehicleRepoTestSuite) TestClearImageURL() {
	suite.mock.ExpectExec(`UPDATE vehicles SET image_url = NULL, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(suite.vehicleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.ClearImageURL(suite.context, suite.vehicleID)
	assert.NoError(suite.T(), err)
}

func (suite *VehicleRepoTestSuite) TestClearImageURL_MissingVehicle() {
	suite.mock.ExpectExec(`UPDATE vehicles SET image_url = NULL, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(suite.vehicleID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.ClearImageURL(suite.context, suite.vehicleID)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}
