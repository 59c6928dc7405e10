package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/TomaszChromy/CarRentalManager/common/jwt"
	"github.com/TomaszChromy/CarRentalManager/common/middleware"
	"github.com/TomaszChromy/CarRentalManager/common/request"
	"github.com/TomaszChromy/CarRentalManager/common/response"
	"github.com/TomaszChromy/CarRentalManager/internal/models"
	"github.com/TomaszChromy/CarRentalManager/internal/repository"
)

// AuthResponse couples the authenticated user with a token pair.
type AuthResponse struct {
	User   models.User    `json:"user"`
	Tokens *jwt.TokenPair `json:"tokens"`
}

func (app *Config) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginRequest

	err := request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	reqLogger := middleware.GetRequestLogger(r.Context())

	user, err := app.Repo.GetUserByEmail(r.Context(), payload.Email)
	if err != nil {
		reqLogger.Warn("Failed login attempt",
			"email", payload.Email,
		)
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		reqLogger.Warn("Invalid password",
			"email", payload.Email,
			"user_id", user.ID,
		)
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	tokens, err := jwt.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		app.JWTSecret,
		app.JWTExpiry,
		app.RefreshExpiry,
	)
	if err != nil {
		reqLogger.Error("Failed to generate tokens",
			"user_id", user.ID,
			"error", err,
		)
		response.InternalServerError(w, "Failed to generate authentication tokens")
		return
	}

	reqLogger.Info("User authenticated",
		"user_id", user.ID,
	)

	response.Success(w, "Authentication successful", AuthResponse{
		User:   user,
		Tokens: tokens,
	})
}

func (app *Config) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterRequest

	err := request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(w, "Failed to process registration")
		return
	}

	// Self-registration always creates a customer account
	user, err := app.Repo.CreateUser(r.Context(), models.User{
		Username:      payload.Username,
		Email:         payload.Email,
		Password:      string(hash),
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		Phone:         payload.Phone,
		LicenseNumber: payload.LicenseNumber,
		Role:          models.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(w, "A user with this username or email already exists")
			return
		}
		app.serverError(w, r, err)
		return
	}

	middleware.GetRequestLogger(r.Context()).Info("User registered",
		"user_id", user.ID,
	)

	response.Created(w, "Registration successful", user)
}

func (app *Config) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var payload RefreshRequest

	err := request.ReadAndValidate(w, r, &payload)
	if request.HandleError(w, err) {
		return
	}

	claims, err := jwt.ValidateToken(payload.RefreshToken, app.JWTSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			response.Unauthorized(w, "Refresh token has expired")
			return
		}
		response.Unauthorized(w, "Invalid refresh token")
		return
	}

	tokens, err := jwt.GenerateTokenPair(
		claims.UserID,
		claims.Email,
		claims.Role,
		app.JWTSecret,
		app.JWTExpiry,
		app.RefreshExpiry,
	)
	if err != nil {
		response.InternalServerError(w, "Failed to generate tokens")
		return
	}

	response.Success(w, "Token refreshed", tokens)
}

// idParam extracts a positive integer URL parameter.
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return id, nil
}

// serverError logs an unexpected failure and responds 500 without
// leaking detail.
func (app *Config) serverError(w http.ResponseWriter, r *http.Request, err error) {
	middleware.GetRequestLogger(r.Context()).Error("Unexpected error",
		"error", err,
	)
	response.InternalServerError(w, "Internal server error")
}
