package main

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username      string  `json:"username" validate:"required,min=3"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6"`
	FirstName     string  `json:"firstName" validate:"required,min=2"`
	LastName      string  `json:"lastName" validate:"required,min=2"`
	Phone         string  `json:"phone" validate:"required"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type CreateCarRequest struct {
	Make               string     `json:"make" validate:"required"`
	Model              string     `json:"model" validate:"required"`
	Year               int        `json:"year" validate:"required,gte=1950,lte=2100"`
	Category           string     `json:"category" validate:"required,oneof=economic compact suv premium"`
	Transmission       string     `json:"transmission" validate:"required,oneof=manual automatic"`
	FuelType           string     `json:"fuelType" validate:"required,oneof=petrol diesel electric"`
	Seats              int        `json:"seats" validate:"required,gte=1,lte=9"`
	Luggage            int        `json:"luggage" validate:"gte=0"`
	HasAirConditioning bool       `json:"hasAirConditioning"`
	FuelConsumption    string     `json:"fuelConsumption" validate:"required,numeric"`
	PricePerDay        string     `json:"pricePerDay" validate:"required,numeric"`
	ImageURL           *string    `json:"imageUrl,omitempty"`
	Status             string     `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	Location           string     `json:"location" validate:"required"`
	PlateNumber        string     `json:"plateNumber" validate:"required"`
	LastServiceDate    *time.Time `json:"lastServiceDate,omitempty"`
}

type UpdateCarRequest struct {
	Make               *string    `json:"make,omitempty"`
	Model              *string    `json:"model,omitempty"`
	Year               *int       `json:"year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	Category           *string    `json:"category,omitempty" validate:"omitempty,oneof=economic compact suv premium"`
	Transmission       *string    `json:"transmission,omitempty" validate:"omitempty,oneof=manual automatic"`
	FuelType           *string    `json:"fuelType,omitempty" validate:"omitempty,oneof=petrol diesel electric"`
	Seats              *int       `json:"seats,omitempty" validate:"omitempty,gte=1,lte=9"`
	Luggage            *int       `json:"luggage,omitempty" validate:"omitempty,gte=0"`
	HasAirConditioning *bool      `json:"hasAirConditioning,omitempty"`
	FuelConsumption    *string    `json:"fuelConsumption,omitempty" validate:"omitempty,numeric"`
	PricePerDay        *string    `json:"pricePerDay,omitempty" validate:"omitempty,numeric"`
	ImageURL           *string    `json:"imageUrl,omitempty"`
	Status             *string    `json:"status,omitempty" validate:"omitempty,oneof=available rented maintenance"`
	Location           *string    `json:"location,omitempty"`
	PlateNumber        *string    `json:"plateNumber,omitempty"`
	LastServiceDate    *time.Time `json:"lastServiceDate,omitempty"`
	Rating             *string    `json:"rating,omitempty" validate:"omitempty,numeric"`
	ReviewCount        *int       `json:"reviewCount,omitempty" validate:"omitempty,gte=0"`
}

// CreateReservationRequest is the booking payload. The driver block is
// validated but not persisted; totalAmount is accepted for
// compatibility and recomputed server-side.
type CreateReservationRequest struct {
	UserID         int       `json:"userId" validate:"required,gt=0"`
	CarID          int       `json:"carId" validate:"required,gt=0"`
	PickupDate     time.Time `json:"pickupDate" validate:"required"`
	ReturnDate     time.Time `json:"returnDate" validate:"required"`
	PickupLocation string    `json:"pickupLocation" validate:"required"`
	ReturnLocation string    `json:"returnLocation" validate:"required"`
	Extras         []string  `json:"extras"`
	TotalAmount    string    `json:"totalAmount,omitempty"`

	DriverName    string `json:"driverName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	LicenseNumber string `json:"licenseNumber" validate:"required"`
	TermsAccepted bool   `json:"termsAccepted" validate:"eq=true"`
}

type UpdateReservationRequest struct {
	PickupDate     *time.Time `json:"pickupDate,omitempty"`
	ReturnDate     *time.Time `json:"returnDate,omitempty"`
	PickupLocation *string    `json:"pickupLocation,omitempty"`
	ReturnLocation *string    `json:"returnLocation,omitempty"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=confirmed active completed cancelled"`
	Extras         *[]string  `json:"extras,omitempty"`
}

// UpdateUserRequest is the profile update payload. A password key is
// accepted and discarded, credentials change only through the auth flow.
type UpdateUserRequest struct {
	Username      *string `json:"username,omitempty" validate:"omitempty,min=3"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName     *string `json:"firstName,omitempty" validate:"omitempty,min=2"`
	LastName      *string `json:"lastName,omitempty" validate:"omitempty,min=2"`
	Phone         *string `json:"phone,omitempty"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
	Password      *string `json:"password,omitempty"`
}

type CreateLocationRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	IsActive *bool  `json:"isActive,omitempty"`
}
