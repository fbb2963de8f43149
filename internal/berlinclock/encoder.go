package berlinclock

import "strings"

// Row lengths, top to bottom
const (
	SecondsLampCount = 1
	HourRow1Count    = 4
	HourRow2Count    = 4
	MinuteRow1Count  = 11
	MinuteRow2Count  = 4
)

const (
	blockSize = 5

	// every third lamp of the five-minute row marks a quarter hour
	quarterEvery = 3
)

// LampGrid holds the five rows of the clock in display order
type LampGrid struct {
	SecondsLamp LampRow
	HourRow1    LampRow
	HourRow2    LampRow
	MinuteRow1  LampRow
	MinuteRow2  LampRow
}

// Convert encodes t as a lamp grid. It fails only when t is out of range
func Convert(t Time) (LampGrid, error) {
	if err := t.Validate(); err != nil {
		return LampGrid{}, err
	}

	return LampGrid{
		SecondsLamp: secondsLamp(t.Seconds),
		HourRow1:    litRow(HourRow1Count, t.Hours/blockSize, Red),
		HourRow2:    litRow(HourRow2Count, t.Hours%blockSize, Red),
		MinuteRow1:  fiveMinuteRow(t.Minutes / blockSize),
		MinuteRow2:  litRow(MinuteRow2Count, t.Minutes%blockSize, Yellow),
	}, nil
}

// ConvertString parses "HH:MM:SS" and returns the rendered grid
func ConvertString(s string) (string, error) {
	t, err := ParseTime(s)
	if err != nil {
		return "", err
	}
	grid, err := Convert(t)
	if err != nil {
		return "", err
	}
	return grid.String(), nil
}

func secondsLamp(seconds int) LampRow {
	if seconds%2 == 0 {
		return LampRow{Yellow}
	}
	return LampRow{Off}
}

// litRow lights the first n of size lamps in color; the rest are off
func litRow(size, n int, color Lamp) LampRow {
	row := make(LampRow, size)
	for i := 0; i < n; i++ {
		row[i] = color
	}
	return row
}

func fiveMinuteRow(n int) LampRow {
	row := litRow(MinuteRow1Count, n, Yellow)
	for i := quarterEvery - 1; i < n; i += quarterEvery {
		row[i] = Red
	}
	return row
}

// Rows returns the rows in display order
func (g LampGrid) Rows() []LampRow {
	return []LampRow{g.SecondsLamp, g.HourRow1, g.HourRow2, g.MinuteRow1, g.MinuteRow2}
}

// RenderWith renders one line per row joined by sep
func (g LampGrid) RenderWith(sep string) string {
	rows := g.Rows()
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = row.String()
	}
	return strings.Join(lines, sep)
}

// String renders the grid one row per line
func (g LampGrid) String() string {
	return g.RenderWith("\n")
}
