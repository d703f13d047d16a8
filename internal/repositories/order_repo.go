package repositories

import (
	"context"
	"errors"
	"time"

	"dealerstock/internal/common"
	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type OrderRepository interface {
	// WithTx returns a copy of the repository bound to the given
	// transaction. Order creation and deletion run every write through it.
	WithTx(tx pgx.Tx) OrderRepository

	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Order, error)
	ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateTotal(ctx context.Context, id uuid.UUID, totalAmount float64) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByVehicleID(ctx context.Context, vehicleID uuid.UUID) (int, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) WithTx(tx pgx.Tx) OrderRepository {
	return &orderRepo{db: tx}
}

const orderColumns = `id, order_number, user_id, vehicle_id, order_date, status, total_amount, notes, payment_method, delivery_date, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(&order.ID, &order.OrderNumber, &order.UserID, &order.VehicleID,
		&order.OrderDate, &order.Status, &order.TotalAmount, &order.Notes,
		&order.PaymentMethod, &order.DeliveryDate, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, order_number, user_id, vehicle_id, order_date, status, total_amount, notes, payment_method, delivery_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.OrderNumber, order.UserID,
		order.VehicleID, order.OrderDate, order.Status, order.TotalAmount,
		order.Notes, order.PaymentMethod, order.DeliveryDate)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return common.Conflictf("order number %s already exists", order.OrderNumber)
	}
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("order not found with id: %s", id)
	}
	return order, err
}

func (r *orderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundf("order not found with order number: %s", orderNumber)
	}
	return order, err
}

func (r *orderRepo) List(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC`
	return r.queryOrders(ctx, query)
}

func (r *orderRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`
	return r.queryOrders(ctx, query, userID)
}

func (r *orderRepo) ListByStatus(ctx context.Context, status string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY order_date DESC`
	return r.queryOrders(ctx, query, status)
}

func (r *orderRepo) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_date BETWEEN $1 AND $2 ORDER BY order_date DESC`
	return r.queryOrders(ctx, query, startDate, endDate)
}

// Update writes the mutable order fields only. Order number, user, items
// and total are not touched here.
func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET status = $1, notes = $2, payment_method = $3, delivery_date = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query, order.Status, order.Notes, order.PaymentMethod,
		order.DeliveryDate, order.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("order not found with id: %s", order.ID)
	}
	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("order not found with id: %s", id)
	}
	return nil
}

func (r *orderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, totalAmount float64) error {
	query := `UPDATE orders SET total_amount = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, totalAmount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("order not found with id: %s", id)
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("order not found with id: %s", id)
	}
	return nil
}

// CountByVehicleID counts orders that reference the vehicle as their
// primary vehicle. Used by the vehicle deletion guard.
func (r *orderRepo) CountByVehicleID(ctx context.Context, vehicleID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE vehicle_id = $1`, vehicleID).Scan(&count)
	return count, err
}

func (r *orderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
