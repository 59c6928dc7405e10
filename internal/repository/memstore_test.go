package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomaszChromy/CarRentalManager/internal/catalog"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

func newTestCar() models.Car {
	return models.Car{
		Make:            "Toyota",
		Model:           "Yaris",
		Year:            2023,
		Category:        "economic",
		Transmission:    "automatic",
		FuelType:        "petrol",
		Seats:           5,
		Luggage:         2,
		FuelConsumption: "5.2",
		PricePerDay:     "89.00",
		Status:          models.CarAvailable,
		Location:        "Warszawa Centrum",
		PlateNumber:     "WAW-001",
	}
}

func newTestReservation(carID int) models.Reservation {
	return models.Reservation{
		UserID:         1,
		CarID:          carID,
		PickupDate:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		ReturnDate:     time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
		PickupLocation: "Warszawa Centrum",
		ReturnLocation: "Warszawa Centrum",
		TotalAmount:    "255.84",
	}
}

func TestCreateCarDefaults(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "5.0", created.Rating)
	assert.Equal(t, 0, created.ReviewCount)

	// Round-trip by id returns the record unchanged
	got, err := store.GetCar(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateCarDuplicatePlate(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	_, err = store.CreateCar(ctx, newTestCar())
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetAllCarsFiltered(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	economy := newTestCar()
	_, err := store.CreateCar(ctx, economy)
	require.NoError(t, err)

	suv := newTestCar()
	suv.Category = "suv"
	suv.PricePerDay = "289.00"
	suv.PlateNumber = "WAW-002"
	created, err := store.CreateCar(ctx, suv)
	require.NoError(t, err)

	category := "suv"
	maxPrice := 300.0
	cars, err := store.GetAllCars(ctx, catalog.CarFilters{Category: &category, MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, created.ID, cars[0].ID)
}

func TestUpdateCarPartialMerge(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	status := "maintenance"
	updated, err := store.UpdateCar(ctx, created.ID, CarUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.CarMaintenance, updated.Status)
	assert.Equal(t, created.Make, updated.Make)
	assert.Equal(t, created.PricePerDay, updated.PricePerDay)

	// Same write again is idempotent
	again, err := store.UpdateCar(ctx, created.ID, CarUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, updated, again)
}

func TestUpdateCarDuplicatePlate(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	first, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	second := newTestCar()
	second.PlateNumber = "WAW-002"
	other, err := store.CreateCar(ctx, second)
	require.NoError(t, err)

	_, err = store.UpdateCar(ctx, other.ID, CarUpdate{PlateNumber: &first.PlateNumber})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Writing a car's own plate back is not a collision
	updated, err := store.UpdateCar(ctx, other.ID, CarUpdate{PlateNumber: &other.PlateNumber})
	require.NoError(t, err)
	assert.Equal(t, "WAW-002", updated.PlateNumber)
}

func TestUpdateCarNotFound(t *testing.T) {
	store := NewMemStore()
	status := "maintenance"

	_, err := store.UpdateCar(context.Background(), 99, CarUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCar(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	created, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	require.NoError(t, store.DeleteCar(ctx, created.ID))
	assert.ErrorIs(t, store.DeleteCar(ctx, created.ID), ErrNotFound)

	_, err = store.GetCar(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookCarFlipsStatus(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	car, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	res, err := store.BookCar(ctx, newTestReservation(car.ID))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, res.Status)
	assert.NotNil(t, res.Extras)

	got, err := store.GetCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CarRented, got.Status)
}

func TestBookCarUnavailable(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	car := newTestCar()
	car.Status = models.CarMaintenance
	created, err := store.CreateCar(ctx, car)
	require.NoError(t, err)

	_, err = store.BookCar(ctx, newTestReservation(created.ID))
	assert.ErrorIs(t, err, ErrCarNotAvailable)

	_, err = store.BookCar(ctx, newTestReservation(99))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookCarConcurrentSingleWinner(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	car, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.BookCar(ctx, newTestReservation(car.ID))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, rejections := 0, 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, ErrCarNotAvailable)
			rejections++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, rejections)
}

func TestReleaseCar(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	car, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)

	_, err = store.BookCar(ctx, newTestReservation(car.ID))
	require.NoError(t, err)

	require.NoError(t, store.ReleaseCar(ctx, car.ID))
	got, err := store.GetCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CarAvailable, got.Status)

	// Releasing a car in maintenance leaves it alone
	status := "maintenance"
	_, err = store.UpdateCar(ctx, car.ID, CarUpdate{Status: &status})
	require.NoError(t, err)
	require.NoError(t, store.ReleaseCar(ctx, car.ID))
	got, _ = store.GetCar(ctx, car.ID)
	assert.Equal(t, models.CarMaintenance, got.Status)
}

func TestReservationFilters(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		car := newTestCar()
		car.PlateNumber = car.PlateNumber + string(rune('A'+i))
		created, err := store.CreateCar(ctx, car)
		require.NoError(t, err)

		res := newTestReservation(created.ID)
		res.UserID = i + 1
		res.PickupDate = res.PickupDate.AddDate(0, 0, i*10)
		res.ReturnDate = res.ReturnDate.AddDate(0, 0, i*10)
		_, err = store.BookCar(ctx, res)
		require.NoError(t, err)
	}

	userID := 2
	byUser, err := store.GetReservationsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, userID, byUser[0].UserID)

	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	later, err := store.GetAllReservations(ctx, ReservationFilters{StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, later, 2)

	status := "confirmed"
	confirmed, err := store.GetAllReservations(ctx, ReservationFilters{Status: &status})
	require.NoError(t, err)
	assert.Len(t, confirmed, 3)
}

func TestUserCreateAndLookup(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.User{
		Username:  "jkowalski",
		Email:     "jan.kowalski@example.com",
		Password:  "hashed",
		FirstName: "Jan",
		LastName:  "Kowalski",
		Phone:     "+48 123 456 789",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, 0, user.LoyaltyPoints)

	byEmail, err := store.GetUserByEmail(ctx, "jan.kowalski@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := store.GetUserByUsername(ctx, "jkowalski")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	_, err = store.CreateUser(ctx, models.User{Username: "jkowalski", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateUserDuplicateUniqueFields(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	first, err := store.CreateUser(ctx, models.User{Username: "jkowalski", Email: "jan@example.com"})
	require.NoError(t, err)
	second, err := store.CreateUser(ctx, models.User{Username: "anowak", Email: "anna@example.com"})
	require.NoError(t, err)

	_, err = store.UpdateUser(ctx, second.ID, UserUpdate{Email: &first.Email})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = store.UpdateUser(ctx, second.ID, UserUpdate{Username: &first.Username})
	assert.ErrorIs(t, err, ErrDuplicate)

	// A user keeps their own unique fields on a no-op write
	updated, err := store.UpdateUser(ctx, second.ID, UserUpdate{Email: &second.Email})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", updated.Email)
}

func TestUpdateReservationInvalidTransition(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	car, err := store.CreateCar(ctx, newTestCar())
	require.NoError(t, err)
	res, err := store.BookCar(ctx, newTestReservation(car.ID))
	require.NoError(t, err)

	completed := "completed"
	_, err = store.UpdateReservation(ctx, res.ID, ReservationUpdate{Status: &completed})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Writing the current status back is allowed
	confirmed := "confirmed"
	updated, err := store.UpdateReservation(ctx, res.ID, ReservationUpdate{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, updated.Status)
}

func TestActiveLocationsOnly(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.CreateLocation(ctx, models.Location{Name: "Warszawa Centrum", City: "Warszawa", IsActive: true})
	require.NoError(t, err)
	_, err = store.CreateLocation(ctx, models.Location{Name: "Closed Branch", City: "Łódź", IsActive: false})
	require.NoError(t, err)

	locations, err := store.GetActiveLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Warszawa Centrum", locations[0].Name)
}
