package mqtt

import "fmt"

// Topic constants for the Berlin Clock display
const (
	// Lamp state published once per second (output)
	TopicClockStateBase = "automation/display/berlin_clock"

	// Virtual time configuration shared by all agents (input)
	TopicTestTimeConfig = "automation/test/time_config"
)

// ClockStateTopic returns the lamp state topic for a display
// Pattern: automation/display/berlin_clock/{display}
func ClockStateTopic(display string) string {
	return fmt.Sprintf("%s/%s", TopicClockStateBase, display)
}

// ConvertCommandTopic returns the topic accepting HH:MM:SS conversion requests for a display
// Pattern: automation/command/berlin_clock/{display}/convert
func ConvertCommandTopic(display string) string {
	return fmt.Sprintf("automation/command/berlin_clock/%s/convert", display)
}

// ConvertReplyTopic returns the topic conversion results are published to
// Pattern: automation/display/berlin_clock/{display}/converted
func ConvertReplyTopic(display string) string {
	return fmt.Sprintf("%s/%s/converted", TopicClockStateBase, display)
}

// AvailabilityTopic returns the retained online/offline topic for a display
// Pattern: automation/display/berlin_clock/{display}/availability
func AvailabilityTopic(display string) string {
	return fmt.Sprintf("%s/%s/availability", TopicClockStateBase, display)
}
