package trigger

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/domain/eventsource"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

// ResponseBody is the facet of a trigger cheap enough for bulk listings.
type ResponseBody struct {
	Id   uuid.UUID
	Name string

	// EventSourceFlavor is the flavor name of the event source this
	// trigger listens to, resolved by the store at read time.
	EventSourceFlavor string

	ActionFlavor  string
	ActionSubType plugin.SubType
	IsActive      bool
}

// ResponseMetadata is detail fetched on demand.
type ResponseMetadata struct {
	Description string
	EventFilter map[string]any
	Action      map[string]any
}

func (m ResponseMetadata) Equal(o ResponseMetadata) bool {
	return m.Description == o.Description &&
		reflect.DeepEqual(m.EventFilter, o.EventFilter) &&
		reflect.DeepEqual(m.Action, o.Action)
}

// ResponseResources carries related entities of a trigger.
type ResponseResources struct {
	EventSource eventsource.EventSource
}

// Response is a read model of a trigger.
//
// It comes in two shapes: partial (body only, what listings return) and
// full (all facets, what Get returns). Accessors of facets a partial
// response does not carry fail with ErrNotHydrated instead of handing
// out empty values; Hydrate refetches the full shape.
type Response struct {
	body      ResponseBody
	metadata  *ResponseMetadata
	resources *ResponseResources
}

// NewPartialResponse builds the body-only shape.
func NewPartialResponse(body ResponseBody) Response {
	return Response{body: body}
}

// NewFullResponse builds the hydrated shape.
func NewFullResponse(
	body ResponseBody, metadata ResponseMetadata, resources ResponseResources,
) Response {
	return Response{body: body, metadata: &metadata, resources: &resources}
}

func (r Response) Body() ResponseBody {
	return r.body
}

// Hydrated reports whether all facets are attached.
func (r Response) Hydrated() bool {
	return r.metadata != nil && r.resources != nil
}

func (r Response) notHydrated(facet string) error {
	return fmt.Errorf(
		"%s of trigger %s is not fetched yet: %w", facet, r.body.Id, kerr.ErrNotHydrated,
	)
}

func (r Response) Description() (string, error) {
	if r.metadata == nil {
		return "", r.notHydrated("description")
	}
	return r.metadata.Description, nil
}

func (r Response) EventFilter() (map[string]any, error) {
	if r.metadata == nil {
		return nil, r.notHydrated("event filter")
	}
	return r.metadata.EventFilter, nil
}

func (r Response) Action() (map[string]any, error) {
	if r.metadata == nil {
		return nil, r.notHydrated("action")
	}
	return r.metadata.Action, nil
}

func (r Response) EventSource() (eventsource.EventSource, error) {
	if r.resources == nil {
		return eventsource.EventSource{}, r.notHydrated("event source")
	}
	return r.resources.EventSource, nil
}

// Getter is the slice of the metadata store Hydrate needs.
type Getter interface {
	Get(ctx context.Context, id uuid.UUID) (Response, error)
}

// Hydrate returns a full-shaped version of this response, refetching
// through store when facets are absent. Already-full responses come
// back as-is, without touching the store.
func (r Response) Hydrate(ctx context.Context, store Getter) (Response, error) {
	if r.Hydrated() {
		return r, nil
	}
	return store.Get(ctx, r.body.Id)
}

func (r Response) Equal(o Response) bool {
	if r.body != o.body {
		return false
	}
	if (r.metadata == nil) != (o.metadata == nil) {
		return false
	}
	if r.metadata != nil && !r.metadata.Equal(*o.metadata) {
		return false
	}
	if (r.resources == nil) != (o.resources == nil) {
		return false
	}
	if r.resources != nil && !r.resources.EventSource.Equal(o.resources.EventSource) {
		return false
	}
	return true
}
