// Package berlinclock encodes a time of day as the lamp rows of a Berlin Clock
package berlinclock

// Lamp is the state of a single clock lamp
type Lamp int

const (
	Off Lamp = iota
	Yellow
	Red
)

// Char returns the single character used for the lamp in text output
func (l Lamp) Char() byte {
	switch l {
	case Yellow:
		return 'Y'
	case Red:
		return 'R'
	default:
		return 'O'
	}
}

// IsLit reports whether the lamp is on
func (l Lamp) IsLit() bool {
	return l != Off
}

func (l Lamp) String() string {
	switch l {
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "off"
	}
}

// LampRow is an ordered row of lamps, read left to right
type LampRow []Lamp

// LitCount returns the number of lit lamps in the row
func (r LampRow) LitCount() int {
	count := 0
	for _, lamp := range r {
		if lamp.IsLit() {
			count++
		}
	}
	return count
}

// String renders the row as one character per lamp
func (r LampRow) String() string {
	b := make([]byte, len(r))
	for i, lamp := range r {
		b[i] = lamp.Char()
	}
	return string(b)
}
