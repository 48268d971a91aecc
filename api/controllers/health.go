package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/minhle2212044/greencycle-backend/api/responses"
	"github.com/minhle2212044/greencycle-backend/pkg/logger"
)

const readyTimeout = 5 * time.Second

// HealthCheck is one named readiness probe.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Live always reports ok; it only proves the process is serving.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Ready runs every probe and reports 503 as soon as one dependency fails.
func Ready(logg *logger.Logger, checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				healthy = false
				status[check.Name] = "down"
				if logg != nil {
					logg.Error(ctx, "health check failed: "+check.Name, err)
				}
				continue
			}
			status[check.Name] = "up"
		}

		if !healthy {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
