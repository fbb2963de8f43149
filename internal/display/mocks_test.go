package display

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/saaga0h/jeeves-clock/pkg/config"
	"github.com/saaga0h/jeeves-clock/pkg/mqtt"
)

type publishedMessage struct {
	Topic    string
	QoS      byte
	Retained bool
	Payload  []byte
}

// mockMQTT records publishes and keeps subscription handlers so tests can deliver messages
type mockMQTT struct {
	mu         sync.Mutex
	connected  bool
	connectErr error
	publishErr error
	published  []publishedMessage
	handlers   map[string]mqtt.MessageHandler
}

func newMockMQTT() *mockMQTT {
	return &mockMQTT{handlers: make(map[string]mqtt.MessageHandler)}
}

func (m *mockMQTT) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connectErr != nil {
		return m.connectErr
	}
	m.connected = true
	return nil
}

func (m *mockMQTT) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
}

func (m *mockMQTT) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[topic] = handler
	return nil
}

func (m *mockMQTT) Publish(topic string, qos byte, retained bool, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, publishedMessage{Topic: topic, QoS: qos, Retained: retained, Payload: payload})
	return nil
}

func (m *mockMQTT) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *mockMQTT) deliver(topic string, payload []byte) {
	m.mu.Lock()
	handler := m.handlers[topic]
	m.mu.Unlock()
	if handler != nil {
		handler(&mockMessage{topic: topic, payload: payload})
	}
}

func (m *mockMQTT) hasHandler(topic string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.handlers[topic]
	return ok
}

func (m *mockMQTT) messages(topic string) []publishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []publishedMessage
	for _, msg := range m.published {
		if msg.Topic == topic {
			out = append(out, msg)
		}
	}
	return out
}

type mockMessage struct {
	topic   string
	payload []byte
}

func (m *mockMessage) Topic() string   { return m.topic }
func (m *mockMessage) Payload() []byte { return m.payload }
func (m *mockMessage) Ack()            {}

// mockRedis is an in-memory stand-in for the hash and list commands the display uses
type mockRedis struct {
	mu      sync.Mutex
	hashes  map[string]map[string]string
	lists   map[string][]string
	ttls    map[string]time.Duration
	failAll error
	closed  bool
}

func newMockRedis() *mockRedis {
	return &mockRedis{
		hashes: make(map[string]map[string]string),
		lists:  make(map[string][]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (r *mockRedis) HSet(ctx context.Context, key string, values ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	if len(values)%2 != 0 {
		return errors.New("odd number of hash arguments")
	}
	h, ok := r.hashes[key]
	if !ok {
		h = make(map[string]string)
		r.hashes[key] = h
	}
	for i := 0; i < len(values); i += 2 {
		h[values[i].(string)] = values[i+1].(string)
	}
	return nil
}

func (r *mockRedis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := make(map[string]string)
	for k, v := range r.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (r *mockRedis) LPush(ctx context.Context, key string, values ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	for _, v := range values {
		r.lists[key] = append([]string{v.(string)}, r.lists[key]...)
	}
	return nil
}

func (r *mockRedis) LTrim(ctx context.Context, key string, start, stop int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	list := r.lists[key]
	if int(stop)+1 < len(list) {
		r.lists[key] = list[start : stop+1]
	}
	return nil
}

func (r *mockRedis) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	list := r.lists[key]
	end := int(stop) + 1
	if end > len(list) {
		end = len(list)
	}
	if int(start) >= end {
		return []string{}, nil
	}
	return append([]string(nil), list[start:end]...), nil
}

func (r *mockRedis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	r.ttls[key] = ttl
	return nil
}

func (r *mockRedis) Ping(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failAll
}

func (r *mockRedis) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *mockRedis) list(key string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lists[key]...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.DisplayID = "hallway"
	cfg.TimeZone = "UTC"
	cfg.PublishIntervalMs = 10
	cfg.HistoryLength = 3
	return cfg
}
