package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 20, 15, 2, 0, time.UTC)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "single time",
			args:       []string{"13:17:01"},
			wantStdout: "O\nRROO\nRRRO\nYYROOOOOOOO\nYYOO\n",
		},
		{
			name:       "two times",
			args:       []string{"00:00:00", "24:00:00"},
			wantStdout: "Y\nOOOO\nOOOO\nOOOOOOOOOOO\nOOOO\n\nY\nRRRR\nRRRR\nOOOOOOOOOOO\nOOOO\n",
		},
		{
			name:       "now in zone",
			args:       []string{"--now", "--time-zone", "Europe/Berlin"},
			wantStdout: "Y\nRRRR\nRROO\nYYROOOOOOOO\nOOOO\n",
		},
		{
			name:       "malformed",
			args:       []string{"13:17"},
			wantCode:   1,
			wantStderr: "malformed time",
		},
		{
			name:       "out of range",
			args:       []string{"23:60:00"},
			wantCode:   1,
			wantStderr: "invalid time",
		},
		{
			name:       "no input",
			wantCode:   2,
			wantStderr: "Usage",
		},
		{
			name:       "unknown zone",
			args:       []string{"--now", "--time-zone", "Nowhere/City"},
			wantCode:   2,
			wantStderr: "invalid time zone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, fixedNow, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.Equal(t, tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}
