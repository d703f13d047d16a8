package models

import (
	"time"

	"github.com/google/uuid"
)

// Order status constants. PENDING is the initial status when none is
// supplied at creation. Status changes are not restricted to particular
// transitions.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

type Order struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	OrderNumber   string     `json:"orderNumber" db:"order_number"`
	UserID        uuid.UUID  `json:"userId" db:"user_id"`
	VehicleID     *uuid.UUID `json:"vehicleId" db:"vehicle_id"`
	OrderDate     time.Time  `json:"orderDate" db:"order_date"`
	Status        string     `json:"status" db:"status"`
	TotalAmount   float64    `json:"totalAmount" db:"total_amount"`
	Notes         *string    `json:"notes" db:"notes"`
	PaymentMethod *string    `json:"paymentMethod" db:"payment_method"`
	DeliveryDate  *time.Time `json:"deliveryDate" db:"delivery_date"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderCreateRequest is the payload accepted by POST /orders.
type OrderCreateRequest struct {
	UserID        uuid.UUID          `json:"userId"`
	VehicleID     *uuid.UUID         `json:"vehicleId"`
	OrderDate     *time.Time         `json:"orderDate"`
	Status        *string            `json:"status"`
	Notes         *string            `json:"notes"`
	PaymentMethod *string            `json:"paymentMethod"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
	OrderItems    []OrderItemRequest `json:"orderItems"`
}

// OrderItemRequest is one requested line within an order creation call.
// Quantity defaults to 1 and IsPaid to false when omitted.
type OrderItemRequest struct {
	VehicleID          *uuid.UUID `json:"vehicleId"`
	Quantity           *int       `json:"quantity"`
	AdditionalServices *string    `json:"additionalServices"`
	IsPaid             *bool      `json:"isPaid"`
}

// OrderUpdateRequest carries the only fields mutable through PUT
// /orders/{id}. User, order number, items and total are immutable there.
type OrderUpdateRequest struct {
	Status        *string    `json:"status"`
	Notes         *string    `json:"notes"`
	PaymentMethod *string    `json:"paymentMethod"`
	DeliveryDate  *time.Time `json:"deliveryDate"`
}

// ItemFailure records an order item request that could not be processed.
// Item failures do not abort order creation; they are reported back to the
// caller alongside the created order.
type ItemFailure struct {
	VehicleID *uuid.UUID `json:"vehicleId"`
	Reason    string     `json:"reason"`
}

// OrderDetail is the API-facing order representation with fields derived
// from the owning user and referenced vehicles.
type OrderDetail struct {
	ID             uuid.UUID          `json:"id"`
	OrderNumber    string             `json:"orderNumber"`
	UserID         uuid.UUID          `json:"userId"`
	CustomerName   string             `json:"customerName"`
	VehicleID      *uuid.UUID         `json:"vehicleId,omitempty"`
	VehicleDetails string             `json:"vehicleDetails,omitempty"`
	OrderDate      time.Time          `json:"orderDate"`
	Status         string             `json:"status"`
	TotalAmount    float64            `json:"totalAmount"`
	Notes          *string            `json:"notes"`
	PaymentMethod  *string            `json:"paymentMethod"`
	DeliveryDate   *time.Time         `json:"deliveryDate"`
	CreatedAt      time.Time          `json:"createdAt"`
	OrderItems     []*OrderItemDetail `json:"orderItems"`
	SkippedItems   []ItemFailure      `json:"skippedItems,omitempty"`
}
