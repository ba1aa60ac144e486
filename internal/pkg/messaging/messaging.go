package messaging

import (
	"context"
	"io"
)

// Publisher publishes events to a destination (topic/subject/queue).
//
// Implementations wrap a single broker client. Publish must be safe for
// concurrent use; Close flushes pending messages and releases the connection.
type Publisher interface {
	io.Closer

	// Publish sends one event to the destination and blocks until the
	// broker has accepted it or the context is done.
	Publish(ctx context.Context, destination string, event Event) error
}

// Event is a broker-agnostic outgoing message.
type Event struct {
	// Body is the serialized payload, JSON in this service.
	Body []byte

	// Key groups related events. Kafka uses it for partitioning and
	// Pub/Sub for ordering; the other brokers ignore it.
	Key string

	// Attributes are string metadata attached to the event. Brokers
	// without native attributes carry them as headers.
	Attributes map[string]string
}
