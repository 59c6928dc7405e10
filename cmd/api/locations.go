package main

import (
	"net/http"

	"github.com/TomaszChromy/CarRentalManager/common/request"
	"github.com/TomaszChromy/CarRentalManager/common/response"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
)

func (app *Config) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := app.Repo.GetActiveLocations(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "Locations retrieved", locations)
}

func (app *Config) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var payload CreateLocationRequest

	err := request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	location, err := app.Repo.CreateLocation(r.Context(), models.Location{
		Name:     payload.Name,
		Address:  payload.Address,
		City:     payload.City,
		IsActive: isActive,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	response.Created(w, "Location created", location)
}
