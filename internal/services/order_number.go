package services

import (
	"strings"

	"github.com/labstack/gommon/random"
)

// OrderNumberGenerator produces the externally visible order identifier.
// Injected into the order service so uniqueness and format are testable.
type OrderNumberGenerator interface {
	Generate() string
}

type randomOrderNumberGenerator struct{}

// NewOrderNumberGenerator returns the default generator, producing tokens
// like "ORD-4F7K2M9Q". Uniqueness is backed by the UNIQUE constraint on
// orders.order_number; a collision surfaces as a conflict on insert.
func NewOrderNumberGenerator() OrderNumberGenerator {
	return randomOrderNumberGenerator{}
}

func (randomOrderNumberGenerator) Generate() string {
	return "ORD-" + strings.ToUpper(random.String(8, random.Alphanumeric))
}
