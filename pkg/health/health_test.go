package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaga0h/jeeves-clock/pkg/mqtt"
)

type stubMQTT struct{ connected bool }

func (s *stubMQTT) Connect(ctx context.Context) error { return nil }
func (s *stubMQTT) Disconnect()                       {}
func (s *stubMQTT) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	return nil
}
func (s *stubMQTT) Publish(topic string, qos byte, retained bool, payload []byte) error {
	return nil
}
func (s *stubMQTT) IsConnected() bool { return s.connected }

type stubRedis struct{ pingErr error }

func (s *stubRedis) HSet(ctx context.Context, key string, values ...interface{}) error { return nil }
func (s *stubRedis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return nil, nil
}
func (s *stubRedis) LPush(ctx context.Context, key string, values ...interface{}) error { return nil }
func (s *stubRedis) LTrim(ctx context.Context, key string, start, stop int64) error    { return nil }
func (s *stubRedis) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return nil, nil
}
func (s *stubRedis) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }
func (s *stubRedis) Ping(ctx context.Context) error                                  { return s.pingErr }
func (s *stubRedis) Close() error                                                    { return nil }

type stubTracker struct{ last time.Time }

func (s stubTracker) LastPublished() time.Time { return s.last }

func newTestChecker(mqttConnected bool, pingErr error, last time.Time, now time.Time) *Checker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := NewChecker(&stubMQTT{connected: mqttConnected}, &stubRedis{pingErr: pingErr}, stubTracker{last: last}, logger)
	checker.now = func() time.Time { return now }
	return checker
}

func TestHandlerFunc(t *testing.T) {
	checker := newTestChecker(false, nil, time.Time{}, time.Now())

	rec := httptest.NewRecorder()
	checker.HandlerFunc()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Services)
}

func TestDetailedHandlerFunc(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		mqttConnected bool
		pingErr       error
		last          time.Time
		wantCode      int
		wantDisplay   string
	}{
		{"all healthy", true, nil, now.Add(-time.Second), http.StatusOK, "publishing"},
		{"mqtt down", false, nil, now.Add(-time.Second), http.StatusServiceUnavailable, "publishing"},
		{"redis down", true, errors.New("down"), now.Add(-time.Second), http.StatusServiceUnavailable, "publishing"},
		{"stale display", true, nil, now.Add(-time.Minute), http.StatusServiceUnavailable, "stale"},
		{"never published", true, nil, time.Time{}, http.StatusServiceUnavailable, "stale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newTestChecker(tt.mqttConnected, tt.pingErr, tt.last, now)

			rec := httptest.NewRecorder()
			checker.DetailedHandlerFunc()(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Services)
			assert.Equal(t, tt.wantDisplay, resp.Services.Display)
		})
	}
}
