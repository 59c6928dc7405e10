package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Liveness probe - just check if the service is running
func (app *Config) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Readiness probe - check if the service can handle requests
func (app *Config) Readiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]bool{
		"database": app.checkDatabase(),
	}

	allHealthy := true
	for _, healthy := range checks {
		if !healthy {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	state := "ready"
	if !allHealthy {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": state,
		"checks": checks,
	})
}

func (app *Config) checkDatabase() bool {
	if app.Repo == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return app.Repo.Ping(ctx) == nil
}
