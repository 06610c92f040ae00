package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/wovenml/weavefab/pkg/api/types/pages"
	"github.com/wovenml/weavefab/pkg/domain/trigger"
)

type TriggerInterface interface {
	// Register stores a new trigger built from spec.
	//
	// Returns the stored record, or error:
	//
	// - ErrMissing (wrapped): the referenced event source does not exist
	Register(ctx context.Context, spec trigger.Spec) (trigger.Trigger, error)

	// Get fetches the trigger by id, fully hydrated: body, metadata and
	// resources facets all attached.
	//
	// Returns ErrMissing-wrapping error when no such trigger.
	Get(ctx context.Context, id uuid.UUID) (trigger.Response, error)

	// Find lists triggers matching filter, paginated (1-origin page).
	// Items are partial responses: body facet only, cheap for listings.
	//
	// Returns ErrInvalidArgument-wrapping error for non-positive page
	// or size.
	Find(ctx context.Context, filter trigger.Filter, page int, size int) (pages.Page[trigger.Response], error)

	// Update merge-patches the trigger: nil fields of upd leave stored
	// values unchanged. Returns the patched record.
	//
	// Returns ErrMissing-wrapping error when no such trigger.
	Update(ctx context.Context, id uuid.UUID, upd trigger.Update) (trigger.Trigger, error)

	// Delete removes the trigger. Execution history rows cascade on the
	// schema's foreign key.
	//
	// Returns ErrMissing-wrapping error when no such trigger.
	Delete(ctx context.Context, id uuid.UUID) error
}
