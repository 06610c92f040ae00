// Package eventsource holds the event source entity: a configured
// instance of an event source flavor, referenced (not owned) by
// triggers.
package eventsource

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

type EventSource struct {
	Id        uuid.UUID
	Workspace uuid.UUID
	Name      string

	// Flavor and SubType identify the event source plugin interpreting
	// Configuration. The type is always plugin.TypeEventSource.
	Flavor  string
	SubType plugin.SubType

	// Configuration is opaque to everything but the matching plugin.
	Configuration map[string]any

	Created time.Time
}

func (e EventSource) Equal(o EventSource) bool {
	return e.Id == o.Id &&
		e.Workspace == o.Workspace &&
		e.Name == o.Name &&
		e.Flavor == o.Flavor &&
		e.SubType == o.SubType &&
		e.Created.Equal(o.Created) &&
		reflect.DeepEqual(e.Configuration, o.Configuration)
}
