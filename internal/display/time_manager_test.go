package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaga0h/jeeves-clock/pkg/mqtt"
)

func TestTimeManager_WallTimeInLocation(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)
	tm := NewTimeManager(loc, testLogger())

	assert.False(t, tm.IsTestMode())
	assert.Equal(t, loc, tm.Now().Location())
}

func TestTimeManager_VirtualTime(t *testing.T) {
	tm := NewTimeManager(time.UTC, testLogger())

	err := tm.Configure([]byte(`{"test_mode":true,"virtual_start":"2024-06-01T23:59:00Z","time_scale":60}`))
	require.NoError(t, err)
	assert.True(t, tm.IsTestMode())

	now := tm.Now()
	assert.Equal(t, 2024, now.Year())
	assert.False(t, now.Before(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)))

	require.NoError(t, tm.Configure([]byte(`{"test_mode":false}`)))
	assert.False(t, tm.IsTestMode())
}

func TestTimeManager_ZeroScaleMeansRealTime(t *testing.T) {
	tm := NewTimeManager(time.UTC, testLogger())
	require.NoError(t, tm.Configure([]byte(`{"test_mode":true,"virtual_start":"2024-06-01T12:00:00Z"}`)))

	assert.Equal(t, 1, tm.timeScale)
}

func TestTimeManager_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{test_mode`},
		{"bad start", `{"test_mode":true,"virtual_start":"yesterday"}`},
		{"negative scale", `{"test_mode":true,"virtual_start":"2024-06-01T12:00:00Z","time_scale":-2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := NewTimeManager(time.UTC, testLogger())
			assert.Error(t, tm.Configure([]byte(tt.payload)))
			assert.False(t, tm.IsTestMode())
		})
	}
}

func TestTimeManager_ConfigureFromMQTT(t *testing.T) {
	mqttClient := newMockMQTT()
	tm := NewTimeManager(time.UTC, testLogger())

	require.NoError(t, tm.ConfigureFromMQTT(mqttClient))
	mqttClient.deliver(mqtt.TopicTestTimeConfig,
		[]byte(`{"test_mode":true,"virtual_start":"2030-01-01T00:00:00Z","time_scale":1}`))

	assert.True(t, tm.IsTestMode())
	assert.Equal(t, 2030, tm.Now().Year())
}
