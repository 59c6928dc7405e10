package main

import (
	"errors"
	"net/http"

	"github.com/TomaszChromy/CarRentalManager/common/request"
	"github.com/TomaszChromy/CarRentalManager/common/response"
	"github.com/TomaszChromy/CarRentalManager/internal/repository"
)

func (app *Config) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := app.Repo.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "User retrieved", user)
}

func (app *Config) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var payload UpdateUserRequest
	err = request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	// payload.Password is dropped on the floor, profile updates never
	// touch credentials
	user, err := app.Repo.UpdateUser(r.Context(), id, repository.UserUpdate{
		Username:      payload.Username,
		Email:         payload.Email,
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		Phone:         payload.Phone,
		LicenseNumber: payload.LicenseNumber,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(w, "Username or email already in use")
			return
		}
		app.serverError(w, r, err)
		return
	}

	response.Success(w, "User updated", user)
}
