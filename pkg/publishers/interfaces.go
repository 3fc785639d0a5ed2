package publishers

import "context"

// Publisher delivers school events to one downstream sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
	// Close releases clients held by the sink.
	Close() error
}
