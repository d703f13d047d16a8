package repositories

import (
	"context"
	"fmt"

	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderItemRepository interface {
	WithTx(tx pgx.Tx) OrderItemRepository

	Create(ctx context.Context, item *models.OrderItem) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
	// ListDetailedByOrderID joins each item with its vehicle to produce the
	// API representation including the derived vehicle description.
	ListDetailedByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemDetail, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
	CountByVehicleID(ctx context.Context, vehicleID uuid.UUID) (int, error)
}

type orderItemRepo struct {
	db Database
}

func NewOrderItemRepo(db Database) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) WithTx(tx pgx.Tx) OrderItemRepository {
	return &orderItemRepo{db: tx}
}

func (r *orderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, vehicle_id, quantity, unit_price, subtotal, additional_services, is_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.OrderID, item.VehicleID,
		item.Quantity, item.UnitPrice, item.Subtotal, item.AdditionalServices, item.IsPaid)
	return err
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, vehicle_id, quantity, unit_price, subtotal, additional_services, is_paid, created_at, updated_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VehicleID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &item.AdditionalServices, &item.IsPaid,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderItemRepo) ListDetailedByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemDetail, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.vehicle_id, v.make, v.model, v.vehicle_year, oi.quantity, oi.unit_price, oi.subtotal, oi.additional_services, oi.is_paid
		FROM order_items oi
		JOIN vehicles v ON v.id = oi.vehicle_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItemDetail
	for rows.Next() {
		item := &models.OrderItemDetail{}
		var make, model string
		var year int
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VehicleID, &make, &model,
			&year, &item.Quantity, &item.UnitPrice, &item.Subtotal,
			&item.AdditionalServices, &item.IsPaid); err != nil {
			return nil, err
		}
		item.VehicleDetails = fmt.Sprintf("%s %s (%d)", make, model, year)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderItemRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	return err
}

// CountByVehicleID counts items referencing the vehicle across all orders.
// Used by the vehicle deletion guard.
func (r *orderItemRepo) CountByVehicleID(ctx context.Context, vehicleID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE vehicle_id = $1`, vehicleID).Scan(&count)
	return count, err
}
