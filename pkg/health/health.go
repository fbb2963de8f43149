package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/saaga0h/jeeves-clock/pkg/mqtt"
	"github.com/saaga0h/jeeves-clock/pkg/redis"
)

// StaleAfter is how long the display may go without publishing before it is reported stale
const StaleAfter = 5 * time.Second

// PublishTracker reports when the display last published its lamp state
type PublishTracker interface {
	LastPublished() time.Time
}

// Checker provides health check functionality for the display agent
type Checker struct {
	mqtt    mqtt.Client
	redis   redis.Client
	tracker PublishTracker
	logger  *slog.Logger
	now     func() time.Time
}

// NewChecker creates a new health checker with the given dependencies
func NewChecker(mqttClient mqtt.Client, redisClient redis.Client, tracker PublishTracker, logger *slog.Logger) *Checker {
	return &Checker{
		mqtt:    mqttClient,
		redis:   redisClient,
		tracker: tracker,
		logger:  logger,
		now:     time.Now,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
	Services  *Services `json:"services,omitempty"`
}

// Services represents the status of external dependencies and the display loop
type Services struct {
	Redis         string `json:"redis"`
	MQTT          string `json:"mqtt"`
	Display       string `json:"display"`
	LastPublished string `json:"last_published,omitempty"`
}

// HandlerFunc returns a liveness handler that does not check dependencies
func (h *Checker) HandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		}
		h.write(w, http.StatusOK, response)
	}
}

// DetailedHandlerFunc returns a handler that checks MQTT, Redis and whether lamp states are still being published
func (h *Checker) DetailedHandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := &Services{
			Redis:   "disconnected",
			MQTT:    "disconnected",
			Display: "stale",
		}

		if h.mqtt != nil && h.mqtt.IsConnected() {
			services.MQTT = "connected"
		}

		if h.redis != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			if err := h.redis.Ping(ctx); err == nil {
				services.Redis = "connected"
			}
			cancel()
		}

		if h.tracker != nil {
			if last := h.tracker.LastPublished(); !last.IsZero() {
				services.LastPublished = last.UTC().Format(time.RFC3339Nano)
				if h.now().Sub(last) <= StaleAfter {
					services.Display = "publishing"
				}
			}
		}

		status := "healthy"
		statusCode := http.StatusOK

		if services.Redis == "disconnected" || services.MQTT == "disconnected" || services.Display == "stale" {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := HealthResponse{
			Status:    status,
			Timestamp: h.now().UTC().Format(time.RFC3339Nano),
			Services:  services,
		}
		h.write(w, statusCode, response)
	}
}

func (h *Checker) write(w http.ResponseWriter, statusCode int, response HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode health response", "error", err)
	}
}
