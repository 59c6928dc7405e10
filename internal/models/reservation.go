package models

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// CanTransitionTo reports whether a status change is allowed:
// confirmed -> active -> completed, with cancellation possible from
// confirmed or active. Completed and cancelled are terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationConfirmed:
		return next == ReservationActive || next == ReservationCancelled
	case ReservationActive:
		return next == ReservationCompleted || next == ReservationCancelled
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

// Reservation is a booking of a car for a date range. Pickup and
// return locations are denormalized snapshots of the location name at
// booking time, not foreign keys.
type Reservation struct {
	ID             int               `json:"id"`
	UserID         int               `json:"userId"`
	CarID          int               `json:"carId"`
	PickupDate     time.Time         `json:"pickupDate"`
	ReturnDate     time.Time         `json:"returnDate"`
	PickupLocation string            `json:"pickupLocation"`
	ReturnLocation string            `json:"returnLocation"`
	Status         ReservationStatus `json:"status"`
	TotalAmount    string            `json:"totalAmount"`
	Extras         []string          `json:"extras"`
	CreatedAt      time.Time         `json:"createdAt"`
}
