package repositories

import (
	"context"
	"errors"

	"dealerstock/internal/common"
	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type VehicleRepository interface {
	// WithTx returns a copy of the repository bound to the given
	// transaction, used by the order workflow for availability updates.
	WithTx(tx pgx.Tx) VehicleRepository

	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	List(ctx context.Context) ([]*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
	ClearImageURL(ctx context.Context, id uuid.UUID) error
	ListByMake(ctx context.Context, make string) ([]*models.Vehicle, error)
	ListByModel(ctx context.Context, model string) ([]*models.Vehicle, error)
	ListByYear(ctx context.Context, year int) ([]*models.Vehicle, error)
	ListByAvailability(ctx context.Context, available bool) ([]*models.Vehicle, error)
	ListByFuelType(ctx context.Context, fuelType string) ([]*models.Vehicle, error)
	ListByTransmissionType(ctx context.Context, transmissionType string) ([]*models.Vehicle, error)
	ListByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*models.Vehicle, error)
	ListByMaxMileage(ctx context.Context, maxMileage int) ([]*models.Vehicle, error)
}

type vehicleRepo struct {
	db Database
}

func NewVehicleRepo(db Database) VehicleRepository {
	return &vehicleRepo{db: db}
}

func (r *vehicleRepo) WithTx(tx pgx.Tx) VehicleRepository {
	return &vehicleRepo{db: tx}
}

const vehicleColumns = `id, make, model, vehicle_year, vin, color, price, mileage, fuel_type, transmission_type, engine_size, available, acquisition_date, description, image_url, created_at, updated_at`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.VIN, &v.Color, &v.Price,
		&v.Mileage, &v.FuelType, &v.TransmissionType, &v.EngineSize, &v.Available,
		&v.AcquisitionDate, &v.Description, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, make, model, vehicle_year, vin, color, price, mileage, fuel_type, transmission_type, engine_size, available, acquisition_date, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vehicle.ID, vehicle.Make, vehicle.Model,
		vehicle.Year, vehicle.VIN, vehicle.Color, vehicle.Price, vehicle.Mileage,
		vehicle.FuelType, vehicle.TransmissionType, vehicle.EngineSize,
		vehicle.Available, vehicle.AcquisitionDate, vehicle.Description, vehicle.ImageURL)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return common.Conflictf("vehicle with VIN %s already exists", vehicle.VIN)
	}
	return err
}

func (r *vehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("vehicle not found with id: %s", id)
	}
	return vehicle, err
}

func (r *vehicleRepo) List(ctx context.Context) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query)
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $1, model = $2, vehicle_year = $3, vin = $4, color = $5, price = $6, mileage = $7, fuel_type = $8, transmission_type = $9, engine_size = $10, available = $11, acquisition_date = $12, description = $13, image_url = $14, updated_at = NOW()
		WHERE id = $15
	`
	tag, err := r.db.Exec(ctx, query, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.VIN, vehicle.Color, vehicle.Price, vehicle.Mileage, vehicle.FuelType,
		vehicle.TransmissionType, vehicle.EngineSize, vehicle.Available,
		vehicle.AcquisitionDate, vehicle.Description, vehicle.ImageURL, vehicle.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("vehicle not found with id: %s", vehicle.ID)
	}
	return nil
}

func (r *vehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("vehicle not found with id: %s", id)
	}
	return nil
}

func (r *vehicleRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE vehicles SET available = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, available, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("vehicle not found with id: %s", id)
	}
	return nil
}

func (r *vehicleRepo) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE vehicles SET image_url = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, imageURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("vehicle not found with id: %s", id)
	}
	return nil
}

func (r *vehicleRepo) ClearImageURL(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vehicles SET image_url = NULL, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("vehicle not found with id: %s", id)
	}
	return nil
}

func (r *vehicleRepo) ListByMake(ctx context.Context, make string) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE LOWER(make) = LOWER($1) ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, make)
}

func (r *vehicleRepo) ListByModel(ctx context.Context, model string) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE LOWER(model) = LOWER($1) ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, model)
}

func (r *vehicleRepo) ListByYear(ctx context.Context, year int) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_year = $1 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, year)
}

func (r *vehicleRepo) ListByAvailability(ctx context.Context, available bool) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE available = $1 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, available)
}

func (r *vehicleRepo) ListByFuelType(ctx context.Context, fuelType string) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE fuel_type = $1 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, fuelType)
}

func (r *vehicleRepo) ListByTransmissionType(ctx context.Context, transmissionType string) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE transmission_type = $1 ORDER BY created_at DESC`
	return r.queryVehicles(ctx, query, transmissionType)
}

func (r *vehicleRepo) ListByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE price BETWEEN $1 AND $2 ORDER BY price ASC`
	return r.queryVehicles(ctx, query, minPrice, maxPrice)
}

func (r *vehicleRepo) ListByMaxMileage(ctx context.Context, maxMileage int) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE mileage < $1 ORDER BY mileage ASC`
	return r.queryVehicles(ctx, query, maxMileage)
}

func (r *vehicleRepo) queryVehicles(ctx context.Context, query string, args ...any) ([]*models.Vehicle, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}
