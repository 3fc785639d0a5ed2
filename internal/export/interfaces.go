package export

import (
	"context"

	"github.com/samvad-hq/nyc-schools/pkg/publishers"
)

// EventPublisher delivers one event and reports how many sinks accepted it.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}
