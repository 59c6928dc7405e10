package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TomaszChromy/CarRentalManager/common/request"
	"github.com/TomaszChromy/CarRentalManager/common/response"
	"github.com/TomaszChromy/CarRentalManager/internal/catalog"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
	"github.com/TomaszChromy/CarRentalManager/internal/repository"
)

// carFiltersFromQuery builds the optional filter set from query
// parameters; absent parameters impose no constraint.
func carFiltersFromQuery(r *http.Request) (catalog.CarFilters, error) {
	q := r.URL.Query()
	filters := catalog.CarFilters{}

	strFilter := func(name string) *string {
		if value := q.Get(name); value != "" {
			return &value
		}
		return nil
	}
	filters.Category = strFilter("category")
	filters.Transmission = strFilter("transmission")
	filters.FuelType = strFilter("fuelType")
	filters.Location = strFilter("location")
	filters.Status = strFilter("status")

	if value := q.Get("minPrice"); value != "" {
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return filters, errors.New("minPrice must be a number")
		}
		filters.MinPrice = &price
	}
	if value := q.Get("maxPrice"); value != "" {
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return filters, errors.New("maxPrice must be a number")
		}
		filters.MaxPrice = &price
	}

	return filters, nil
}

func (app *Config) ListCars(w http.ResponseWriter, r *http.Request) {
	filters, err := carFiltersFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	cars, err := app.Repo.GetAllCars(r.Context(), filters)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	catalog.Sort(cars, r.URL.Query().Get("sortBy"))

	response.Success(w, "Cars retrieved", cars)
}

func (app *Config) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	car, err := app.Repo.GetCar(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Car not found")
			return
		}
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "Car retrieved", car)
}

func (app *Config) CreateCar(w http.ResponseWriter, r *http.Request) {
	var payload CreateCarRequest

	err := request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	car, err := app.Repo.CreateCar(r.Context(), models.Car{
		Make:               payload.Make,
		Model:              payload.Model,
		Year:               payload.Year,
		Category:           payload.Category,
		Transmission:       payload.Transmission,
		FuelType:           payload.FuelType,
		Seats:              payload.Seats,
		Luggage:            payload.Luggage,
		HasAirConditioning: payload.HasAirConditioning,
		FuelConsumption:    payload.FuelConsumption,
		PricePerDay:        payload.PricePerDay,
		ImageURL:           payload.ImageURL,
		Status:             models.CarStatus(payload.Status),
		Location:           payload.Location,
		PlateNumber:        payload.PlateNumber,
		LastServiceDate:    payload.LastServiceDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(w, "A car with this plate number already exists")
			return
		}
		app.serverError(w, r, err)
		return
	}

	response.Created(w, "Car created", car)
}

func (app *Config) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var payload UpdateCarRequest
	err = request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	car, err := app.Repo.UpdateCar(r.Context(), id, repository.CarUpdate{
		Make:               payload.Make,
		Model:              payload.Model,
		Year:               payload.Year,
		Category:           payload.Category,
		Transmission:       payload.Transmission,
		FuelType:           payload.FuelType,
		Seats:              payload.Seats,
		Luggage:            payload.Luggage,
		HasAirConditioning: payload.HasAirConditioning,
		FuelConsumption:    payload.FuelConsumption,
		PricePerDay:        payload.PricePerDay,
		ImageURL:           payload.ImageURL,
		Status:             payload.Status,
		Location:           payload.Location,
		PlateNumber:        payload.PlateNumber,
		LastServiceDate:    payload.LastServiceDate,
		Rating:             payload.Rating,
		ReviewCount:        payload.ReviewCount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Car not found")
			return
		}
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(w, "A car with this plate number already exists")
			return
		}
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "Car updated", car)
}

func (app *Config) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	err = app.Repo.DeleteCar(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "Car not found")
			return
		}
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "Car deleted", nil)
}
