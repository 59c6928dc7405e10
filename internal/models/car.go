package models

import "time"

type CarStatus string

const (
	CarAvailable   CarStatus = "available"
	CarRented      CarStatus = "rented"
	CarMaintenance CarStatus = "maintenance"
)

// Vehicle categories, transmissions and fuel types as used by the
// catalog filters.
const (
	CategoryEconomic = "economic"
	CategoryCompact  = "compact"
	CategorySUV      = "suv"
	CategoryPremium  = "premium"

	TransmissionManual    = "manual"
	TransmissionAutomatic = "automatic"

	FuelPetrol   = "petrol"
	FuelDiesel   = "diesel"
	FuelElectric = "electric"
)

// Car is a vehicle in the rental fleet. Decimal columns
// (fuelConsumption, pricePerDay, rating) are carried as 2-decimal
// strings end to end and parsed only where numeric comparison is
// needed.
type Car struct {
	ID                 int        `json:"id"`
	Make               string     `json:"make"`
	Model              string     `json:"model"`
	Year               int        `json:"year"`
	Category           string     `json:"category"`
	Transmission       string     `json:"transmission"`
	FuelType           string     `json:"fuelType"`
	Seats              int        `json:"seats"`
	Luggage            int        `json:"luggage"`
	HasAirConditioning bool       `json:"hasAirConditioning"`
	FuelConsumption    string     `json:"fuelConsumption"`
	PricePerDay        string     `json:"pricePerDay"`
	ImageURL           *string    `json:"imageUrl,omitempty"`
	Status             CarStatus  `json:"status"`
	Location           string     `json:"location"`
	PlateNumber        string     `json:"plateNumber"`
	LastServiceDate    *time.Time `json:"lastServiceDate,omitempty"`
	Rating             string     `json:"rating"`
	ReviewCount        int        `json:"reviewCount"`
}
