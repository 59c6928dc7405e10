package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TomaszChromy/CarRentalManager/common/middleware"
	"github.com/TomaszChromy/CarRentalManager/common/request"
	"github.com/TomaszChromy/CarRentalManager/common/response"
	"github.com/TomaszChromy/CarRentalManager/common/telemetry"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
	"github.com/TomaszChromy/CarRentalManager/internal/pricing"
	"github.com/TomaszChromy/CarRentalManager/internal/repository"
)

func reservationFiltersFromQuery(r *http.Request) (repository.ReservationFilters, error) {
	q := r.URL.Query()
	filters := repository.ReservationFilters{}

	if value := q.Get("status"); value != "" {
		filters.Status = &value
	}
	if value := q.Get("userId"); value != "" {
		userID, err := strconv.Atoi(value)
		if err != nil {
			return filters, errors.New("userId must be an integer")
		}
		filters.UserID = &userID
	}
	if value := q.Get("startDate"); value != "" {
		start, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return filters, errors.New("startDate must be an RFC 3339 timestamp")
		}
		filters.StartDate = &start
	}
	if value := q.Get("endDate"); value != "" {
		end, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return filters, errors.New("endDate must be an RFC 3339 timestamp")
		}
		filters.EndDate = &end
	}

	return filters, nil
}

func (app *Config) ListReservations(w http.ResponseWriter, r *http.Request) {
	filters, err := reservationFiltersFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	reservations, err := app.Repo.GetAllReservations(r.Context(), filters)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "Reservations retrieved", reservations)
}

func (app *Config) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	reservation, err := app.Repo.GetReservation(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Reservation not found")
			return
		}
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "Reservation retrieved", reservation)
}

func (app *Config) ListReservationsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	reservations, err := app.Repo.GetReservationsByUser(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "Reservations retrieved", reservations)
}

// CreateReservation books a car. The date range and extras are
// validated, the total is computed server-side from the car's daily
// rate, and the reservation insert plus the availability flip commit
// atomically in the store.
func (app *Config) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var payload CreateReservationRequest

	err := request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	if err := pricing.ValidateRange(payload.PickupDate, payload.ReturnDate); err != nil {
		response.BadRequest(w, "Return date must be after pickup date")
		return
	}

	ctx, span := telemetry.Tracer.Start(r.Context(), "reservation.book")
	defer span.End()

	car, err := app.Repo.GetCar(ctx, payload.CarID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Car not found")
			return
		}
		app.serverError(w, r, err)
		return
	}

	quote, err := pricing.Compute(
		pricing.ParseAmount(car.PricePerDay),
		payload.PickupDate,
		payload.ReturnDate,
		payload.Extras,
	)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownExtra) {
			response.BadRequest(w, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}

	reservation, err := app.Repo.BookCar(ctx, models.Reservation{
		UserID:         payload.UserID,
		CarID:          payload.CarID,
		PickupDate:     payload.PickupDate,
		ReturnDate:     payload.ReturnDate,
		PickupLocation: payload.PickupLocation,
		ReturnLocation: payload.ReturnLocation,
		Status:         models.ReservationConfirmed,
		TotalAmount:    pricing.FormatAmount(quote.Total),
		Extras:         payload.Extras,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Car not found")
			return
		}
		if errors.Is(err, repository.ErrCarNotAvailable) {
			response.Conflict(w, "Car is not available")
			return
		}
		app.serverError(w, r, err)
		return
	}

	middleware.GetRequestLogger(r.Context()).Info("Reservation created",
		"reservation_id", reservation.ID,
		"car_id", reservation.CarID,
		"user_id", reservation.UserID,
		"total", reservation.TotalAmount,
	)

	response.Created(w, "Reservation created", reservation)
}

func (app *Config) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var payload UpdateReservationRequest
	err = request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	current, err := app.Repo.GetReservation(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Reservation not found")
			return
		}
		app.serverError(w, r, err)
		return
	}

	update := repository.ReservationUpdate{
		PickupDate:     payload.PickupDate,
		ReturnDate:     payload.ReturnDate,
		PickupLocation: payload.PickupLocation,
		ReturnLocation: payload.ReturnLocation,
		Status:         payload.Status,
		Extras:         payload.Extras,
	}

	// Changing the dates or extras changes the price, so the total is
	// recomputed from the car's rate like on booking.
	if payload.PickupDate != nil || payload.ReturnDate != nil || payload.Extras != nil {
		pickup := current.PickupDate
		ret := current.ReturnDate
		extras := current.Extras
		if payload.PickupDate != nil {
			pickup = *payload.PickupDate
		}
		if payload.ReturnDate != nil {
			ret = *payload.ReturnDate
		}
		if payload.Extras != nil {
			extras = *payload.Extras
		}

		if err := pricing.ValidateRange(pickup, ret); err != nil {
			response.BadRequest(w, "Return date must be after pickup date")
			return
		}

		car, err := app.Repo.GetCar(r.Context(), current.CarID)
		if err != nil {
			app.serverError(w, r, err)
			return
		}

		quote, err := pricing.Compute(pricing.ParseAmount(car.PricePerDay), pickup, ret, extras)
		if err != nil {
			if errors.Is(err, pricing.ErrUnknownExtra) {
				response.BadRequest(w, err.Error())
				return
			}
			app.serverError(w, r, err)
			return
		}
		total := pricing.FormatAmount(quote.Total)
		update.TotalAmount = &total
	}

	reservation, err := app.Repo.UpdateReservation(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Reservation not found")
			return
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			response.BadRequest(w, "Invalid status transition to "+*payload.Status)
			return
		}
		app.serverError(w, r, err)
		return
	}

	if payload.Status != nil && models.ReservationStatus(*payload.Status).IsTerminal() {
		if err := app.Repo.ReleaseCar(r.Context(), reservation.CarID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			middleware.GetRequestLogger(r.Context()).Error("Failed to release car",
				"car_id", reservation.CarID,
				"error", err,
			)
		}
	}

	response.Success(w, "Reservation updated", reservation)
}

// GetExtras exposes the extras catalog for booking forms.
func (app *Config) GetExtras(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "Extras retrieved", pricing.ExtraOptions)
}
