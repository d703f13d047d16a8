package repositories

import (
	"context"
	"errors"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, record *models.Maintenance) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Maintenance, error)
	List(ctx context.Context) ([]*models.Maintenance, error)
	ListByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*models.Maintenance, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Maintenance, error)
	ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Maintenance, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*models.Maintenance, error)
	Update(ctx context.Context, record *models.Maintenance) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type maintenanceRepo struct {
	db Database
}

func NewMaintenanceRepo(db Database) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

const maintenanceColumns = `id, vehicle_id, maintenance_type, service_date, next_service_date, cost, description, service_provider, mileage_at_service, status, created_at, updated_at`

func scanMaintenance(row pgx.Row) (*models.Maintenance, error) {
	m := &models.Maintenance{}
	err := row.Scan(&m.ID, &m.VehicleID, &m.MaintenanceType, &m.ServiceDate,
		&m.NextServiceDate, &m.Cost, &m.Description, &m.ServiceProvider,
		&m.MileageAtService, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepo) Create(ctx context.Context, record *models.Maintenance) error {
	query := `
		INSERT INTO maintenance_records (id, vehicle_id, maintenance_type, service_date, next_service_date, cost, description, service_provider, mileage_at_service, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.VehicleID, record.MaintenanceType,
		record.ServiceDate, record.NextServiceDate, record.Cost, record.Description,
		record.ServiceProvider, record.MileageAtService, record.Status)
	return err
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE id = $1`
	record, err := scanMaintenance(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("maintenance record not found with id: %s", id)
	}
	return record, err
}

func (r *maintenanceRepo) List(ctx context.Context) ([]*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records ORDER BY service_date DESC`
	return r.queryRecords(ctx, query)
}

func (r *maintenanceRepo) ListByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE vehicle_id = $1 ORDER BY service_date DESC`
	return r.queryRecords(ctx, query, vehicleID)
}

func (r *maintenanceRepo) ListByStatus(ctx context.Context, status string) ([]*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE status = $1 ORDER BY service_date DESC`
	return r.queryRecords(ctx, query, status)
}

func (r *maintenanceRepo) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE service_date BETWEEN $1 AND $2 ORDER BY service_date DESC`
	return r.queryRecords(ctx, query, startDate, endDate)
}

func (r *maintenanceRepo) ListUpcoming(ctx context.Context, from time.Time) ([]*models.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE service_date >= $1 ORDER BY service_date ASC`
	return r.queryRecords(ctx, query, from)
}

func (r *maintenanceRepo) Update(ctx context.Context, record *models.Maintenance) error {
	query := `
		UPDATE maintenance_records
		SET maintenance_type = $1, service_date = $2, next_service_date = $3, cost = $4, description = $5, service_provider = $6, mileage_at_service = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`
	tag, err := r.db.Exec(ctx, query, record.MaintenanceType, record.ServiceDate,
		record.NextServiceDate, record.Cost, record.Description, record.ServiceProvider,
		record.MileageAtService, record.Status, record.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("maintenance record not found with id: %s", record.ID)
	}
	return nil
}

func (r *maintenanceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE maintenance_records SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("maintenance record not found with id: %s", id)
	}
	return nil
}

func (r *maintenanceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM maintenance_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("maintenance record not found with id: %s", id)
	}
	return nil
}

func (r *maintenanceRepo) queryRecords(ctx context.Context, query string, args ...any) ([]*models.Maintenance, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Maintenance
	for rows.Next() {
		record, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
