package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// MongoPinger is satisfied by *mongo.Client.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// MongoDB is required; Redis is only checked when configured.
// Ping failures are logged, never returned to the caller.
type HealthDependenciesHandler struct {
	mongo MongoPinger
	redis RedisPinger
	log   zerolog.Logger
}

// NewHealthDependenciesHandler builds the readiness handler. rdb may be nil
// when Redis is disabled.
func NewHealthDependenciesHandler(mongo MongoPinger, rdb RedisPinger, log zerolog.Logger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		mongo: mongo,
		redis: rdb,
		log:   log,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Error().Err(err).Str("dependency", "mongodb").Msg("readiness check failed")
		deps["mongodb"] = dependencyStatus{Status: "unhealthy"}
		healthy = false
	} else {
		deps["mongodb"] = dependencyStatus{Status: "ok"}
	}

	if h.redis == nil {
		deps["redis"] = dependencyStatus{Status: "disabled"}
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Error().Err(err).Str("dependency", "redis").Msg("readiness check failed")
		deps["redis"] = dependencyStatus{Status: "unhealthy"}
		healthy = false
	} else {
		deps["redis"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
