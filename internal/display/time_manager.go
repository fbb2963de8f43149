package display

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saaga0h/jeeves-clock/pkg/mqtt"
)

// TimeManager supplies the time shown on the clock: wall time in the display's
// zone, or a virtual time configured over MQTT for test scenarios
type TimeManager struct {
	mu           sync.RWMutex
	location     *time.Location
	testMode     bool
	virtualStart time.Time
	realStart    time.Time
	timeScale    int
	logger       *slog.Logger
}

// timeConfig is the payload of automation/test/time_config
type timeConfig struct {
	VirtualStart string `json:"virtual_start"`
	TimeScale    int    `json:"time_scale"`
	TestMode     bool   `json:"test_mode"`
}

// NewTimeManager creates a time manager reporting wall time in loc
func NewTimeManager(loc *time.Location, logger *slog.Logger) *TimeManager {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeManager{
		location:  loc,
		realStart: time.Now(),
		timeScale: 1,
		logger:    logger,
	}
}

// ConfigureFromMQTT subscribes to test mode configuration
func (tm *TimeManager) ConfigureFromMQTT(mqttClient mqtt.Client) error {
	handler := func(msg mqtt.Message) {
		if err := tm.Configure(msg.Payload()); err != nil {
			tm.logger.Error("Failed to apply test mode config", "error", err)
		}
	}

	return mqttClient.Subscribe(mqtt.TopicTestTimeConfig, 1, handler)
}

// Configure applies a JSON test mode configuration
func (tm *TimeManager) Configure(payload []byte) error {
	var cfg timeConfig
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return fmt.Errorf("failed to parse test mode config: %w", err)
	}

	if !cfg.TestMode {
		tm.mu.Lock()
		tm.testMode = false
		tm.mu.Unlock()
		tm.logger.Info("Test mode disabled")
		return nil
	}

	virtualStart, err := time.Parse(time.RFC3339, cfg.VirtualStart)
	if err != nil {
		return fmt.Errorf("invalid virtual_start time: %w", err)
	}
	if cfg.TimeScale < 0 {
		return fmt.Errorf("invalid time_scale %d", cfg.TimeScale)
	}
	scale := cfg.TimeScale
	if scale == 0 {
		scale = 1
	}

	tm.mu.Lock()
	tm.testMode = true
	tm.virtualStart = virtualStart
	tm.realStart = time.Now()
	tm.timeScale = scale
	tm.mu.Unlock()

	tm.logger.Info("Test mode configured",
		"virtual_start", cfg.VirtualStart,
		"time_scale", scale)
	return nil
}

// Now returns the current time (real or virtual) in the display's zone
func (tm *TimeManager) Now() time.Time {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	if !tm.testMode {
		return time.Now().In(tm.location)
	}

	realElapsed := time.Since(tm.realStart)
	virtualElapsed := realElapsed * time.Duration(tm.timeScale)
	return tm.virtualStart.Add(virtualElapsed).In(tm.location)
}

// IsTestMode returns whether test mode is active
func (tm *TimeManager) IsTestMode() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.testMode
}
