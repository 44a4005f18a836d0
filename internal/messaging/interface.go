package messaging

import "context"

// PublisherInterface is the event publishing contract; services depend on it
// so tests can substitute a mock.
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

var _ PublisherInterface = (*Publisher)(nil)
