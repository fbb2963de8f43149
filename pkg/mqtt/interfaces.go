package mqtt

import "context"

// Client is the broker connection shared by the display agent and the health checker
type Client interface {
	// Connect establishes a connection to the MQTT broker, giving up when ctx is done
	Connect(ctx context.Context) error

	// Disconnect marks the display offline and closes the connection
	Disconnect()

	// Subscribe registers handler for messages on topic
	Subscribe(topic string, qos byte, handler MessageHandler) error

	// Publish sends payload to topic and waits for the broker to accept it
	Publish(topic string, qos byte, retained bool, payload []byte) error

	IsConnected() bool
}

// MessageHandler is called for each message on a subscribed topic
type MessageHandler func(Message)

// Message is an incoming MQTT message
type Message interface {
	Topic() string
	Payload() []byte
	// Ack acknowledges the message (for QoS > 0)
	Ack()
}
