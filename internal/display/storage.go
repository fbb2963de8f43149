package display

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/saaga0h/jeeves-clock/pkg/config"
	"github.com/saaga0h/jeeves-clock/pkg/redis"
)

// Storage keeps the latest lamp state and a short history in Redis
type Storage struct {
	redis  redis.Client
	cfg    *config.Config
	logger *slog.Logger
}

// NewStorage creates a new storage handler
func NewStorage(redisClient redis.Client, cfg *config.Config, logger *slog.Logger) *Storage {
	return &Storage{
		redis:  redisClient,
		cfg:    cfg,
		logger: logger,
	}
}

// SaveState stores payload as the current state and prepends it to the history
func (s *Storage) SaveState(ctx context.Context, payload StatePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal lamp state: %w", err)
	}

	stateKey := redis.ClockStateKey(payload.Display)
	err = s.redis.HSet(ctx, stateKey,
		"message_id", payload.MessageID.String(),
		"time", payload.Time,
		"text", payload.Text,
		"timestamp", payload.Timestamp,
		"payload", string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to store lamp state: %w", err)
	}

	ttl := s.cfg.StateTTL()
	if ttl > 0 {
		if err := s.redis.Expire(ctx, stateKey, ttl); err != nil {
			s.logger.Warn("Failed to set TTL on lamp state", "key", stateKey, "error", err)
		}
	}

	if s.cfg.HistoryLength == 0 {
		return nil
	}

	historyKey := redis.ClockHistoryKey(payload.Display)
	if err := s.redis.LPush(ctx, historyKey, string(data)); err != nil {
		return fmt.Errorf("failed to append lamp history: %w", err)
	}
	if err := s.redis.LTrim(ctx, historyKey, 0, int64(s.cfg.HistoryLength-1)); err != nil {
		return fmt.Errorf("failed to trim lamp history: %w", err)
	}
	if ttl > 0 {
		if err := s.redis.Expire(ctx, historyKey, ttl); err != nil {
			s.logger.Warn("Failed to set TTL on lamp history", "key", historyKey, "error", err)
		}
	}

	return nil
}

// LoadState returns the latest stored state of a display, or nil when none is stored
func (s *Storage) LoadState(ctx context.Context, display string) (*StatePayload, error) {
	fields, err := s.redis.HGetAll(ctx, redis.ClockStateKey(display))
	if err != nil {
		return nil, fmt.Errorf("failed to load lamp state: %w", err)
	}

	raw, ok := fields["payload"]
	if !ok {
		return nil, nil
	}

	var payload StatePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode lamp state: %w", err)
	}
	return &payload, nil
}

// LoadHistory returns up to limit recent states of a display, newest first.
// Entries that fail to decode are skipped
func (s *Storage) LoadHistory(ctx context.Context, display string, limit int) ([]StatePayload, error) {
	if limit <= 0 {
		return nil, nil
	}

	entries, err := s.redis.LRange(ctx, redis.ClockHistoryKey(display), 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("failed to load lamp history: %w", err)
	}

	history := make([]StatePayload, 0, len(entries))
	for _, entry := range entries {
		var payload StatePayload
		if err := json.Unmarshal([]byte(entry), &payload); err != nil {
			s.logger.Warn("Skipping undecodable history entry", "display", display, "error", err)
			continue
		}
		history = append(history, payload)
	}
	return history, nil
}
