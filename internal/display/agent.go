package display

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/saaga0h/jeeves-clock/internal/berlinclock"
	"github.com/saaga0h/jeeves-clock/pkg/config"
	"github.com/saaga0h/jeeves-clock/pkg/mqtt"
	"github.com/saaga0h/jeeves-clock/pkg/redis"
)

// Agent drives one Berlin Clock display: every second it encodes the current
// time, publishes the lamp grid over MQTT and keeps it in Redis
type Agent struct {
	mqtt        mqtt.Client
	redis       redis.Client
	storage     *Storage
	cfg         *config.Config
	logger      *slog.Logger
	timeManager *TimeManager

	mu            sync.RWMutex
	lastShown     berlinclock.Time
	hasShown      bool
	lastPublished time.Time
}

// NewAgent creates a new display agent with the given dependencies
func NewAgent(mqttClient mqtt.Client, redisClient redis.Client, cfg *config.Config, logger *slog.Logger) *Agent {
	return &Agent{
		mqtt:        mqttClient,
		redis:       redisClient,
		storage:     NewStorage(redisClient, cfg, logger),
		cfg:         cfg,
		logger:      logger,
		timeManager: NewTimeManager(cfg.Location(), logger),
	}
}

// Start connects the agent and publishes the clock until ctx is cancelled
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("Starting Berlin Clock display agent",
		"service_name", a.cfg.ServiceName,
		"display", a.cfg.DisplayID,
		"time_zone", a.cfg.TimeZone,
		"mqtt_broker", a.cfg.MQTTAddress())

	if err := a.mqtt.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	if err := a.redis.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	if last, err := a.storage.LoadState(ctx, a.cfg.DisplayID); err != nil {
		a.logger.Warn("Failed to load previous lamp state", "error", err)
	} else if last != nil {
		a.logger.Info("Previous lamp state found", "time", last.Time, "timestamp", last.Timestamp)
	}

	if err := a.timeManager.ConfigureFromMQTT(a.mqtt); err != nil {
		a.logger.Warn("Failed to subscribe to test mode config", "error", err)
		// Not fatal - continue on wall time
	}

	commandTopic := mqtt.ConvertCommandTopic(a.cfg.DisplayID)
	if err := a.mqtt.Subscribe(commandTopic, 1, a.handleConvert); err != nil {
		a.logger.Error("Failed to subscribe to convert commands", "topic", commandTopic, "error", err)
	}

	a.logger.Info("Display agent started",
		"state_topic", mqtt.ClockStateTopic(a.cfg.DisplayID),
		"publish_interval", a.cfg.PublishInterval())

	a.run(ctx)

	a.logger.Info("Display agent stopping")
	return nil
}

// run samples the clock every publish interval and publishes whenever the shown second changes
func (a *Agent) run(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.PublishInterval())
	defer ticker.Stop()

	a.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

func (a *Agent) tick(ctx context.Context) {
	t := berlinclock.FromClock(a.timeManager.Now())

	a.mu.RLock()
	unchanged := a.hasShown && a.lastShown == t
	a.mu.RUnlock()
	if unchanged {
		return
	}

	if err := a.PublishTime(ctx, t); err != nil {
		a.logger.Error("Failed to publish lamp state", "time", t.String(), "error", err)
	}
}

// PublishTime encodes t, publishes it to the display's state topic and stores it.
// A storage failure is logged and does not fail the call
func (a *Agent) PublishTime(ctx context.Context, t berlinclock.Time) error {
	grid, err := berlinclock.Convert(t)
	if err != nil {
		return err
	}

	now := time.Now()
	payload := NewStatePayload(a.cfg.DisplayID, t, grid, now)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal lamp state: %w", err)
	}

	topic := mqtt.ClockStateTopic(a.cfg.DisplayID)
	if err := a.mqtt.Publish(topic, 0, a.cfg.RetainState, data); err != nil {
		return err
	}

	a.mu.Lock()
	a.lastShown = t
	a.hasShown = true
	a.lastPublished = now
	a.mu.Unlock()

	if err := a.storage.SaveState(ctx, payload); err != nil {
		a.logger.Error("Failed to store lamp state",
			"display", a.cfg.DisplayID,
			"time", payload.Time,
			"error", err)
	}

	a.logger.Debug("Lamp state published", "time", payload.Time, "rows", strings.Join(payload.Rows, " "))
	return nil
}

// LastPublished returns when the lamp state was last published, or the zero time
func (a *Agent) LastPublished() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastPublished
}

// Stop gracefully stops the display agent
func (a *Agent) Stop() error {
	a.logger.Info("Stopping display agent")

	a.mqtt.Disconnect()

	if err := a.redis.Close(); err != nil {
		a.logger.Error("Error closing Redis connection", "error", err)
		return err
	}

	a.logger.Info("Display agent stopped")
	return nil
}

// handleConvert answers an HH:MM:SS request with the lamp state for that time
func (a *Agent) handleConvert(msg mqtt.Message) {
	input := string(msg.Payload())
	replyTopic := mqtt.ConvertReplyTopic(a.cfg.DisplayID)
	now := time.Now()

	a.logger.Debug("Received convert request", "topic", msg.Topic(), "input", input)

	var reply interface{}
	t, err := berlinclock.ParseTime(input)
	if err == nil {
		var grid berlinclock.LampGrid
		grid, err = berlinclock.Convert(t)
		if err == nil {
			reply = NewStatePayload(a.cfg.DisplayID, t, grid, now)
		}
	}
	if err != nil {
		a.logger.Warn("Rejected convert request", "input", input, "error", err)
		reply = ErrorPayload{
			Display:   a.cfg.DisplayID,
			Input:     input,
			Error:     err.Error(),
			Timestamp: now.UTC().Format(time.RFC3339Nano),
		}
	}

	data, err := json.Marshal(reply)
	if err != nil {
		a.logger.Error("Failed to marshal convert reply", "error", err)
		return
	}

	if err := a.mqtt.Publish(replyTopic, 1, false, data); err != nil {
		a.logger.Error("Failed to publish convert reply", "topic", replyTopic, "error", err)
	}
}
