package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Fuel type constants
const (
	FuelPetrol   = "PETROL"
	FuelDiesel   = "DIESEL"
	FuelElectric = "ELECTRIC"
	FuelHybrid   = "HYBRID"
	FuelLPG      = "LPG"
)

// Transmission type constants
const (
	TransmissionManual        = "MANUAL"
	TransmissionAutomatic     = "AUTOMATIC"
	TransmissionSemiAutomatic = "SEMI_AUTOMATIC"
)

type Vehicle struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Make             string     `json:"make" db:"make"`
	Model            string     `json:"model" db:"model"`
	Year             int        `json:"year" db:"vehicle_year"`
	VIN              string     `json:"vin" db:"vin"`
	Color            *string    `json:"color" db:"color"`
	Price            float64    `json:"price" db:"price"`
	Mileage          *int       `json:"mileage" db:"mileage"`
	FuelType         *string    `json:"fuelType" db:"fuel_type"`
	TransmissionType *string    `json:"transmissionType" db:"transmission_type"`
	EngineSize       *string    `json:"engineSize" db:"engine_size"`
	Available        bool       `json:"available" db:"available"`
	AcquisitionDate  *time.Time `json:"acquisitionDate" db:"acquisition_date"`
	Description      *string    `json:"description" db:"description"`
	ImageURL         *string    `json:"imageUrl" db:"image_url"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// Details returns the human-readable description used in order
// representations, e.g. "Toyota Corolla (2021)".
func (v *Vehicle) Details() string {
	return fmt.Sprintf("%s %s (%d)", v.Make, v.Model, v.Year)
}

func ValidFuelType(fuelType string) bool {
	switch fuelType {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid, FuelLPG:
		return true
	}
	return false
}

func ValidTransmissionType(transmissionType string) bool {
	switch transmissionType {
	case TransmissionManual, TransmissionAutomatic, TransmissionSemiAutomatic:
		return true
	}
	return false
}
