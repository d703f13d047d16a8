package models

import (
	"time"

	"github.com/google/uuid"
)

// User role constants
const (
	RoleAdmin       = "ADMIN"
	RoleManager     = "MANAGER"
	RoleSalesperson = "SALESPERSON"
	RoleCustomer    = "CUSTOMER"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // Never serialize in JSON
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName returns the customer-facing display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func ValidUserRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSalesperson, RoleCustomer:
		return true
	}
	return false
}
