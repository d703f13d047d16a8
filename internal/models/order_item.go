package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is one vehicle line within an order. Unit price is captured
// from the vehicle at order time and never follows later price changes.
type OrderItem struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	OrderID            uuid.UUID `json:"orderId" db:"order_id"`
	VehicleID          uuid.UUID `json:"vehicleId" db:"vehicle_id"`
	Quantity           int       `json:"quantity" db:"quantity"`
	UnitPrice          float64   `json:"unitPrice" db:"unit_price"`
	Subtotal           float64   `json:"subtotal" db:"subtotal"`
	AdditionalServices *string   `json:"additionalServices" db:"additional_services"`
	IsPaid             bool      `json:"isPaid" db:"is_paid"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItemDetail is the API-facing item representation including the
// derived vehicle description.
type OrderItemDetail struct {
	ID                 uuid.UUID `json:"id"`
	OrderID            uuid.UUID `json:"orderId"`
	VehicleID          uuid.UUID `json:"vehicleId"`
	VehicleDetails     string    `json:"vehicleDetails"`
	Quantity           int       `json:"quantity"`
	UnitPrice          float64   `json:"unitPrice"`
	Subtotal           float64   `json:"subtotal"`
	AdditionalServices *string   `json:"additionalServices"`
	IsPaid             bool      `json:"isPaid"`
}
