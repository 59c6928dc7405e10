package models

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is an account in the rental system. The password hash never
// leaves the server: the field is excluded from JSON entirely.
type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone"`
	LicenseNumber *string   `json:"licenseNumber,omitempty"`
	Role          UserRole  `json:"role"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}
