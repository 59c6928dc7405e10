package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TomaszChromy/CarRentalManager/internal/catalog"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

// MemStoreRepo is an in-memory record store with the same contract as
// the Postgres implementation. It backs local development and the
// handler tests. Ids are assigned from per-entity counters guarded by
// the store mutex.
type MemStoreRepo struct {
	mu sync.Mutex

	users        map[int]models.User
	cars         map[int]models.Car
	reservations map[int]models.Reservation
	locations    map[int]models.Location

	nextUserID        int
	nextCarID         int
	nextReservationID int
	nextLocationID    int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStoreRepo {
	return &MemStoreRepo{
		users:             map[int]models.User{},
		cars:              map[int]models.Car{},
		reservations:      map[int]models.Reservation{},
		locations:         map[int]models.Location{},
		nextUserID:        1,
		nextCarID:         1,
		nextReservationID: 1,
		nextLocationID:    1,
	}
}

func (m *MemStoreRepo) Ping(ctx context.Context) error {
	return nil
}

// Users

func (m *MemStoreRepo) GetUser(ctx context.Context, id int) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *MemStoreRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *MemStoreRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *MemStoreRepo) findUser(match func(models.User) bool) (models.User, error) {
	for _, user := range m.users {
		if match(user) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MemStoreRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return models.User{}, ErrDuplicate
		}
	}

	user.ID = m.nextUserID
	m.nextUserID++
	user.LoyaltyPoints = 0
	user.CreatedAt = time.Now()
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *MemStoreRepo) UpdateUser(ctx context.Context, id int, updates UserUpdate) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	for otherID, other := range m.users {
		if otherID == id {
			continue
		}
		if updates.Username != nil && other.Username == *updates.Username {
			return models.User{}, ErrDuplicate
		}
		if updates.Email != nil && other.Email == *updates.Email {
			return models.User{}, ErrDuplicate
		}
	}

	if updates.Username != nil {
		user.Username = *updates.Username
	}
	if updates.Email != nil {
		user.Email = *updates.Email
	}
	if updates.FirstName != nil {
		user.FirstName = *updates.FirstName
	}
	if updates.LastName != nil {
		user.LastName = *updates.LastName
	}
	if updates.Phone != nil {
		user.Phone = *updates.Phone
	}
	if updates.LicenseNumber != nil {
		user.LicenseNumber = updates.LicenseNumber
	}

	m.users[id] = user
	return user, nil
}

// Cars

func (m *MemStoreRepo) GetCar(ctx context.Context, id int) (models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.cars[id]
	if !ok {
		return models.Car{}, ErrNotFound
	}
	return car, nil
}

func (m *MemStoreRepo) GetAllCars(ctx context.Context, filters catalog.CarFilters) ([]models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cars := make([]models.Car, 0, len(m.cars))
	for _, car := range m.cars {
		cars = append(cars, car)
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })

	return catalog.Filter(cars, filters), nil
}

func (m *MemStoreRepo) CreateCar(ctx context.Context, car models.Car) (models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.cars {
		if existing.PlateNumber == car.PlateNumber {
			return models.Car{}, ErrDuplicate
		}
	}

	car.ID = m.nextCarID
	m.nextCarID++
	car.Rating = "5.0"
	car.ReviewCount = 0
	if car.Status == "" {
		car.Status = models.CarAvailable
	}
	m.cars[car.ID] = car
	return car, nil
}

func (m *MemStoreRepo) UpdateCar(ctx context.Context, id int, updates CarUpdate) (models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.cars[id]
	if !ok {
		return models.Car{}, ErrNotFound
	}

	if updates.PlateNumber != nil {
		for otherID, other := range m.cars {
			if otherID != id && other.PlateNumber == *updates.PlateNumber {
				return models.Car{}, ErrDuplicate
			}
		}
	}

	if updates.Make != nil {
		car.Make = *updates.Make
	}
	if updates.Model != nil {
		car.Model = *updates.Model
	}
	if updates.Year != nil {
		car.Year = *updates.Year
	}
	if updates.Category != nil {
		car.Category = *updates.Category
	}
	if updates.Transmission != nil {
		car.Transmission = *updates.Transmission
	}
	if updates.FuelType != nil {
		car.FuelType = *updates.FuelType
	}
	if updates.Seats != nil {
		car.Seats = *updates.Seats
	}
	if updates.Luggage != nil {
		car.Luggage = *updates.Luggage
	}
	if updates.HasAirConditioning != nil {
		car.HasAirConditioning = *updates.HasAirConditioning
	}
	if updates.FuelConsumption != nil {
		car.FuelConsumption = *updates.FuelConsumption
	}
	if updates.PricePerDay != nil {
		car.PricePerDay = *updates.PricePerDay
	}
	if updates.ImageURL != nil {
		car.ImageURL = updates.ImageURL
	}
	if updates.Status != nil {
		car.Status = models.CarStatus(*updates.Status)
	}
	if updates.Location != nil {
		car.Location = *updates.Location
	}
	if updates.PlateNumber != nil {
		car.PlateNumber = *updates.PlateNumber
	}
	if updates.LastServiceDate != nil {
		car.LastServiceDate = updates.LastServiceDate
	}
	if updates.Rating != nil {
		car.Rating = *updates.Rating
	}
	if updates.ReviewCount != nil {
		car.ReviewCount = *updates.ReviewCount
	}

	m.cars[id] = car
	return car, nil
}

func (m *MemStoreRepo) DeleteCar(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cars[id]; !ok {
		return ErrNotFound
	}
	delete(m.cars, id)
	return nil
}

func (m *MemStoreRepo) ReleaseCar(ctx context.Context, carID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.cars[carID]
	if !ok {
		return ErrNotFound
	}
	if car.Status == models.CarRented {
		car.Status = models.CarAvailable
		m.cars[carID] = car
	}
	return nil
}

// Reservations

func (m *MemStoreRepo) GetReservation(ctx context.Context, id int) (models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[id]
	if !ok {
		return models.Reservation{}, ErrNotFound
	}
	return res, nil
}

func (m *MemStoreRepo) GetReservationsByUser(ctx context.Context, userID int) ([]models.Reservation, error) {
	return m.GetAllReservations(ctx, ReservationFilters{UserID: &userID})
}

func (m *MemStoreRepo) GetAllReservations(ctx context.Context, filters ReservationFilters) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reservations := []models.Reservation{}
	for _, res := range m.reservations {
		if filters.Status != nil && string(res.Status) != *filters.Status {
			continue
		}
		if filters.UserID != nil && res.UserID != *filters.UserID {
			continue
		}
		if filters.StartDate != nil && res.PickupDate.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && res.ReturnDate.After(*filters.EndDate) {
			continue
		}
		reservations = append(reservations, res)
	}
	sort.Slice(reservations, func(i, j int) bool { return reservations[i].ID < reservations[j].ID })
	return reservations, nil
}

// BookCar holds the store lock across the availability check, the
// reservation insert and the status flip, so concurrent bookings for
// the same car serialize and exactly one succeeds.
func (m *MemStoreRepo) BookCar(ctx context.Context, reservation models.Reservation) (models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.cars[reservation.CarID]
	if !ok {
		return models.Reservation{}, ErrNotFound
	}
	if car.Status != models.CarAvailable {
		return models.Reservation{}, ErrCarNotAvailable
	}

	reservation.ID = m.nextReservationID
	m.nextReservationID++
	reservation.CreatedAt = time.Now()
	if reservation.Status == "" {
		reservation.Status = models.ReservationConfirmed
	}
	if reservation.Extras == nil {
		reservation.Extras = []string{}
	}
	m.reservations[reservation.ID] = reservation

	car.Status = models.CarRented
	m.cars[car.ID] = car

	return reservation, nil
}

func (m *MemStoreRepo) UpdateReservation(ctx context.Context, id int, updates ReservationUpdate) (models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.reservations[id]
	if !ok {
		return models.Reservation{}, ErrNotFound
	}

	if updates.Status != nil {
		next := models.ReservationStatus(*updates.Status)
		if next != res.Status && !res.Status.CanTransitionTo(next) {
			return models.Reservation{}, ErrInvalidTransition
		}
	}

	if updates.PickupDate != nil {
		res.PickupDate = *updates.PickupDate
	}
	if updates.ReturnDate != nil {
		res.ReturnDate = *updates.ReturnDate
	}
	if updates.PickupLocation != nil {
		res.PickupLocation = *updates.PickupLocation
	}
	if updates.ReturnLocation != nil {
		res.ReturnLocation = *updates.ReturnLocation
	}
	if updates.Status != nil {
		res.Status = models.ReservationStatus(*updates.Status)
	}
	if updates.TotalAmount != nil {
		res.TotalAmount = *updates.TotalAmount
	}
	if updates.Extras != nil {
		res.Extras = *updates.Extras
	}

	m.reservations[id] = res
	return res, nil
}

// Locations

func (m *MemStoreRepo) GetActiveLocations(ctx context.Context) ([]models.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	locations := []models.Location{}
	for _, loc := range m.locations {
		if loc.IsActive {
			locations = append(locations, loc)
		}
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].ID < locations[j].ID })
	return locations, nil
}

func (m *MemStoreRepo) CreateLocation(ctx context.Context, location models.Location) (models.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	location.ID = m.nextLocationID
	m.nextLocationID++
	m.locations[location.ID] = location
	return location, nil
}
