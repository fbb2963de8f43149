package display

import (
	"time"

	"github.com/google/uuid"
	"github.com/saaga0h/jeeves-clock/internal/berlinclock"
)

// StatePayload is the JSON message describing the lamps of one display at one second
type StatePayload struct {
	MessageID uuid.UUID  `json:"message_id"`
	Display   string     `json:"display"`
	Time      string     `json:"time"`
	Rows      []string   `json:"rows"`
	Lamps     [][]string `json:"lamps"`
	Text      string     `json:"text"`
	Timestamp string     `json:"timestamp"`
}

// ErrorPayload is published in reply to a conversion request that could not be served
type ErrorPayload struct {
	Display   string `json:"display"`
	Input     string `json:"input"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// NewStatePayload describes grid, the encoding of t, as shown on display at now
func NewStatePayload(display string, t berlinclock.Time, grid berlinclock.LampGrid, now time.Time) StatePayload {
	rows := grid.Rows()
	payload := StatePayload{
		MessageID: uuid.New(),
		Display:   display,
		Time:      t.String(),
		Rows:      make([]string, len(rows)),
		Lamps:     make([][]string, len(rows)),
		Text:      grid.String(),
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}

	for i, row := range rows {
		payload.Rows[i] = row.String()
		lamps := make([]string, len(row))
		for j, lamp := range row {
			lamps[j] = lamp.String()
		}
		payload.Lamps[i] = lamps
	}

	return payload
}
