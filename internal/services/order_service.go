package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dealerstock/internal/caching"
	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderCacheTTL = 5 * time.Minute

// OrderServiceInterface is the order workflow engine. Creation and
// deletion are the two operations with cross-entity side effects: they
// move vehicle availability together with the order rows, atomically.
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *models.OrderCreateRequest) (*models.OrderDetail, error)
	GetAllOrders(ctx context.Context) ([]*models.OrderDetail, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.OrderDetail, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.OrderDetail, error)
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*models.OrderDetail, error)
	GetOrdersByStatus(ctx context.Context, status string) ([]*models.OrderDetail, error)
	GetOrdersByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.OrderDetail, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, req *models.OrderUpdateRequest) (*models.OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.OrderDetail, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	db       repositories.Database
	orders   repositories.OrderRepository
	items    repositories.OrderItemRepository
	users    repositories.UserRepository
	vehicles repositories.VehicleRepository
	numbers  OrderNumberGenerator
	cache    caching.CacheService
}

// NewOrderService creates the order workflow service. cache may be nil,
// in which case all reads go straight to the store.
func NewOrderService(db repositories.Database, orders repositories.OrderRepository,
	items repositories.OrderItemRepository, users repositories.UserRepository,
	vehicles repositories.VehicleRepository, numbers OrderNumberGenerator,
	cache caching.CacheService) OrderServiceInterface {
	return &orderService{
		db:       db,
		orders:   orders,
		items:    items,
		users:    users,
		vehicles: vehicles,
		numbers:  numbers,
		cache:    cache,
	}
}

// CreateOrder converts an order request into a persisted order with line
// items. The owning user must exist; a missing vehicle on an individual
// item skips that item and the order is created with the rest. All writes
// happen in one transaction so a failure leaves no partial state.
func (s *orderService) CreateOrder(ctx context.Context, req *models.OrderCreateRequest) (*models.OrderDetail, error) {
	if req.UserID == uuid.Nil {
		return nil, common.Validationf("userId is required")
	}
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   s.numbers.Generate(),
		UserID:        user.ID,
		OrderDate:     time.Now(),
		Status:        models.OrderStatusPending,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		DeliveryDate:  req.DeliveryDate,
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if req.Status != nil {
		if !models.ValidOrderStatus(*req.Status) {
			return nil, common.Validationf("invalid order status: %s", *req.Status)
		}
		order.Status = *req.Status
	}

	// The primary vehicle is optional and non-fatal: if it cannot be
	// resolved the order is created without one.
	var primaryVehicle *models.Vehicle
	if req.VehicleID != nil {
		primaryVehicle, err = s.vehicles.GetByID(ctx, *req.VehicleID)
		if err != nil {
			log.Printf("order %s: primary vehicle unresolved: %v", order.OrderNumber, err)
		} else {
			order.VehicleID = &primaryVehicle.ID
		}
	}

	itemReqs := req.OrderItems
	if len(itemReqs) == 0 && req.VehicleID != nil {
		// No explicit items but a primary vehicle: synthesize one line
		// for it with quantity 1.
		itemReqs = []models.OrderItemRequest{{VehicleID: req.VehicleID}}
	}

	var (
		itemDetails []*models.OrderItemDetail
		skipped     []models.ItemFailure
		touched     []uuid.UUID
	)

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		orders := s.orders.WithTx(tx)
		items := s.items.WithTx(tx)
		vehicles := s.vehicles.WithTx(tx)

		if err := orders.Create(ctx, order); err != nil {
			return err
		}

		var total float64
		for _, ir := range itemReqs {
			if ir.VehicleID == nil {
				skipped = append(skipped, models.ItemFailure{Reason: "vehicleId is required"})
				continue
			}
			quantity := 1
			if ir.Quantity != nil {
				quantity = *ir.Quantity
			}
			if quantity <= 0 {
				skipped = append(skipped, models.ItemFailure{VehicleID: ir.VehicleID, Reason: "quantity must be positive"})
				continue
			}
			vehicle, err := vehicles.GetByID(ctx, *ir.VehicleID)
			if err != nil {
				// Per-item resolution failures do not abort the order.
				log.Printf("order %s: skipping item: %v", order.OrderNumber, err)
				skipped = append(skipped, models.ItemFailure{VehicleID: ir.VehicleID, Reason: err.Error()})
				continue
			}

			item := &models.OrderItem{
				ID:                 uuid.New(),
				OrderID:            order.ID,
				VehicleID:          vehicle.ID,
				Quantity:           quantity,
				UnitPrice:          vehicle.Price,
				Subtotal:           vehicle.Price * float64(quantity),
				AdditionalServices: ir.AdditionalServices,
				IsPaid:             ir.IsPaid != nil && *ir.IsPaid,
			}
			if err := items.Create(ctx, item); err != nil {
				return err
			}
			total += item.Subtotal

			if err := vehicles.SetAvailability(ctx, vehicle.ID, false); err != nil {
				return err
			}
			touched = append(touched, vehicle.ID)

			itemDetails = append(itemDetails, &models.OrderItemDetail{
				ID:                 item.ID,
				OrderID:            item.OrderID,
				VehicleID:          item.VehicleID,
				VehicleDetails:     vehicle.Details(),
				Quantity:           item.Quantity,
				UnitPrice:          item.UnitPrice,
				Subtotal:           item.Subtotal,
				AdditionalServices: item.AdditionalServices,
				IsPaid:             item.IsPaid,
			})
		}

		order.TotalAmount = total
		return orders.UpdateTotal(ctx, order.ID, total)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateVehicles(ctx, touched)

	detail := s.newDetail(order, user)
	detail.OrderItems = itemDetails
	detail.SkippedItems = skipped
	if primaryVehicle != nil {
		detail.VehicleDetails = primaryVehicle.Details()
	}
	return detail, nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]*models.OrderDetail, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, orders)
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.OrderDetail, error) {
	if s.cache != nil {
		if detail, err := s.cache.GetOrderDetail(ctx, id); err == nil && detail != nil {
			return detail, nil
		}
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := s.buildDetail(ctx, order)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetOrderDetail(ctx, detail, orderCacheTTL); err != nil {
			log.Printf("cache order %s: %v", id, err)
		}
	}
	return detail, nil
}

func (s *orderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.OrderDetail, error) {
	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, order)
}

func (s *orderService) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]*models.OrderDetail, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, orders)
}

func (s *orderService) GetOrdersByStatus(ctx context.Context, status string) ([]*models.OrderDetail, error) {
	if !models.ValidOrderStatus(status) {
		return nil, common.Validationf("invalid order status: %s", status)
	}
	orders, err := s.orders.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, orders)
}

func (s *orderService) GetOrdersByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.OrderDetail, error) {
	if err := common.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, orders)
}

// UpdateOrder applies the mutable order fields. User, order number, items
// and total cannot be changed through this operation.
func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, req *models.OrderUpdateRequest) (*models.OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !models.ValidOrderStatus(*req.Status) {
			return nil, common.Validationf("invalid order status: %s", *req.Status)
		}
		order.Status = *req.Status
	}
	order.Notes = req.Notes
	order.PaymentMethod = req.PaymentMethod
	order.DeliveryDate = req.DeliveryDate

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateOrder(ctx, id)
	return s.buildDetail(ctx, order)
}

// UpdateOrderStatus overwrites the status. Any status may move to any
// other; no transition check is applied.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.OrderDetail, error) {
	if !models.ValidOrderStatus(status) {
		return nil, common.Validationf("invalid order status: %s", status)
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.invalidateOrder(ctx, id)
	return s.buildDetail(ctx, order)
}

// DeleteOrder removes the order and its items, first restoring
// availability for every vehicle the items reference. Restoration happens
// once per distinct vehicle regardless of the order's status, in the same
// transaction as the deletes.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var touched []uuid.UUID
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		orders := s.orders.WithTx(tx)
		items := s.items.WithTx(tx)
		vehicles := s.vehicles.WithTx(tx)

		orderItems, err := items.ListByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		seen := make(map[uuid.UUID]bool)
		for _, item := range orderItems {
			if seen[item.VehicleID] {
				continue
			}
			seen[item.VehicleID] = true
			if err := vehicles.SetAvailability(ctx, item.VehicleID, true); err != nil {
				return err
			}
			touched = append(touched, item.VehicleID)
		}

		if err := items.DeleteByOrderID(ctx, order.ID); err != nil {
			return err
		}
		return orders.Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}

	s.invalidateVehicles(ctx, touched)
	s.invalidateOrder(ctx, id)
	return nil
}

func (s *orderService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (s *orderService) newDetail(order *models.Order, user *models.User) *models.OrderDetail {
	return &models.OrderDetail{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		CustomerName:  user.FullName(),
		VehicleID:     order.VehicleID,
		OrderDate:     order.OrderDate,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		Notes:         order.Notes,
		PaymentMethod: order.PaymentMethod,
		DeliveryDate:  order.DeliveryDate,
		CreatedAt:     order.CreatedAt,
	}
}

func (s *orderService) buildDetail(ctx context.Context, order *models.Order) (*models.OrderDetail, error) {
	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	detail := s.newDetail(order, user)

	if order.VehicleID != nil {
		vehicle, err := s.vehicles.GetByID(ctx, *order.VehicleID)
		if err == nil {
			detail.VehicleDetails = vehicle.Details()
		}
	}

	items, err := s.items.ListDetailedByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	detail.OrderItems = items
	return detail, nil
}

func (s *orderService) buildDetails(ctx context.Context, orders []*models.Order) ([]*models.OrderDetail, error) {
	details := make([]*models.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail, err := s.buildDetail(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *orderService) invalidateVehicles(ctx context.Context, vehicleIDs []uuid.UUID) {
	if s.cache == nil {
		return
	}
	for _, id := range vehicleIDs {
		if err := s.cache.DeleteVehicle(ctx, id); err != nil {
			log.Printf("invalidate vehicle cache %s: %v", id, err)
		}
	}
}

func (s *orderService) invalidateOrder(ctx context.Context, orderID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteOrderDetail(ctx, orderID); err != nil {
		log.Printf("invalidate order cache %s: %v", orderID, err)
	}
}
