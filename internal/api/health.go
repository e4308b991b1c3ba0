// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/respond"
)

// readinessTimeout bounds each dependency check.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis client backing the content cache.
	CheckCache func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check func(ctx context.Context) error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		err := dependency.check(ctx)
		cancel()

		result := checkResult{Name: dependency.name, IsOK: err == nil}
		if err != nil {
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", dependency.name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK
	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		"status": responseStatus,
		"checks": results,
	}})
}
