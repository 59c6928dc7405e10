package repository

import (
	"context"
	"errors"
	"time"

	"github.com/TomaszChromy/CarRentalManager/internal/catalog"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

var (
	// ErrNotFound means the id (or unique field) has no matching record.
	ErrNotFound = errors.New("record not found")
	// ErrCarNotAvailable means the booking lost the availability check:
	// the car is rented, in maintenance, or was taken by a concurrent booking.
	ErrCarNotAvailable = errors.New("car is not available")
	// ErrDuplicate means a unique field (username, email, plate number)
	// is already taken.
	ErrDuplicate = errors.New("duplicate unique field")
	// ErrInvalidTransition means a status update is not allowed from the
	// reservation's current status. The check runs inside the store so
	// concurrent updates validate against the committed status, not a
	// stale read.
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

// ReservationFilters holds the optional reservation list predicates.
type ReservationFilters struct {
	Status    *string
	UserID    *int
	StartDate *time.Time
	EndDate   *time.Time
}

// UserUpdate carries a partial user update; nil fields are left untouched.
// The password is deliberately absent, it changes only through the auth flow.
type UserUpdate struct {
	Username      *string
	Email         *string
	FirstName     *string
	LastName      *string
	Phone         *string
	LicenseNumber *string
}

// CarUpdate carries a partial car update; nil fields are left untouched.
type CarUpdate struct {
	Make               *string
	Model              *string
	Year               *int
	Category           *string
	Transmission       *string
	FuelType           *string
	Seats              *int
	Luggage            *int
	HasAirConditioning *bool
	FuelConsumption    *string
	PricePerDay        *string
	ImageURL           *string
	Status             *string
	Location           *string
	PlateNumber        *string
	LastServiceDate    *time.Time
	Rating             *string
	ReviewCount        *int
}

// ReservationUpdate carries a partial reservation update.
type ReservationUpdate struct {
	PickupDate     *time.Time
	ReturnDate     *time.Time
	PickupLocation *string
	ReturnLocation *string
	Status         *string
	TotalAmount    *string
	Extras         *[]string
}

// DatabaseRepo is the record store: CRUD by id for the four entity
// types, unique-field lookup for users, filtered listing for cars and
// reservations, and the transactional booking operation.
type DatabaseRepo interface {
	Ping(ctx context.Context) error

	// Users
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, id int, updates UserUpdate) (models.User, error)

	// Cars
	GetCar(ctx context.Context, id int) (models.Car, error)
	GetAllCars(ctx context.Context, filters catalog.CarFilters) ([]models.Car, error)
	CreateCar(ctx context.Context, car models.Car) (models.Car, error)
	UpdateCar(ctx context.Context, id int, updates CarUpdate) (models.Car, error)
	DeleteCar(ctx context.Context, id int) error

	// Reservations
	GetReservation(ctx context.Context, id int) (models.Reservation, error)
	GetReservationsByUser(ctx context.Context, userID int) ([]models.Reservation, error)
	GetAllReservations(ctx context.Context, filters ReservationFilters) ([]models.Reservation, error)
	// BookCar atomically checks the car is available, creates the
	// reservation and flips the car to rented. Exactly one of two
	// concurrent bookings for the same car can succeed; the loser
	// gets ErrCarNotAvailable.
	BookCar(ctx context.Context, reservation models.Reservation) (models.Reservation, error)
	UpdateReservation(ctx context.Context, id int, updates ReservationUpdate) (models.Reservation, error)
	// ReleaseCar flips a rented car back to available, used when a
	// reservation reaches a terminal state.
	ReleaseCar(ctx context.Context, carID int) error

	// Locations
	GetActiveLocations(ctx context.Context) ([]models.Location, error)
	CreateLocation(ctx context.Context, location models.Location) (models.Location, error)
}
