package redis

import "fmt"

// Key construction helpers for the Berlin Clock display

// ClockStateKey returns the key for the latest lamp state of a display (hash)
// Pattern: display:berlin_clock:{display}
func ClockStateKey(display string) string {
	return fmt.Sprintf("display:berlin_clock:%s", display)
}

// ClockHistoryKey returns the key for recent lamp states of a display (list, newest first)
// Pattern: history:berlin_clock:{display}
func ClockHistoryKey(display string) string {
	return fmt.Sprintf("history:berlin_clock:%s", display)
}
