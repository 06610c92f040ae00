package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/wovenml/weavefab/pkg/domain/eventsource"
)

type EventSourceInterface interface {
	// Get fetches the event source by id.
	//
	// Returns ErrMissing-wrapping error when no such event source.
	Get(ctx context.Context, id uuid.UUID) (eventsource.EventSource, error)
}
