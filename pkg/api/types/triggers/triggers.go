package triggers

import (
	"reflect"

	"github.com/google/uuid"
)

// Spec is the creation request of a trigger.
type Spec struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Workspace     uuid.UUID      `json:"workspace"`
	EventSourceId uuid.UUID      `json:"event_source_id"`
	EventFilter   map[string]any `json:"event_filter"`
	Action        map[string]any `json:"action"`
	ActionFlavor  string         `json:"action_flavor"`
	ActionSubType string         `json:"action_subtype"`
}

func (s Spec) Equal(o Spec) bool {
	return s.Name == o.Name &&
		s.Description == o.Description &&
		s.Workspace == o.Workspace &&
		s.EventSourceId == o.EventSourceId &&
		s.ActionFlavor == o.ActionFlavor &&
		s.ActionSubType == o.ActionSubType &&
		reflect.DeepEqual(s.EventFilter, o.EventFilter) &&
		reflect.DeepEqual(s.Action, o.Action)
}

// Update is a merge-patch of a trigger: absent (null) fields leave the
// stored value unchanged.
type Update struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	EventFilter map[string]any `json:"event_filter,omitempty"`
	Action      map[string]any `json:"action,omitempty"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

// Summary is the cheap-to-list facet of a trigger.
type Summary struct {
	Id                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	EventSourceFlavor string    `json:"event_source_flavor"`
	ActionFlavor      string    `json:"action_flavor"`
	ActionSubType     string    `json:"action_subtype"`
	IsActive          bool      `json:"is_active"`
}

func (s Summary) Equal(o Summary) bool {
	return s == o
}

// Metadata is detail fetched on demand.
type Metadata struct {
	Description string         `json:"description,omitempty"`
	EventFilter map[string]any `json:"event_filter"`
	Action      map[string]any `json:"action"`
}

func (m Metadata) Equal(o Metadata) bool {
	return m.Description == o.Description &&
		reflect.DeepEqual(m.EventFilter, o.EventFilter) &&
		reflect.DeepEqual(m.Action, o.Action)
}

// EventSource is the related-entity reference carried by a hydrated
// trigger response.
type EventSource struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Flavor  string    `json:"flavor"`
	SubType string    `json:"subtype"`
}

type Resources struct {
	EventSource EventSource `json:"event_source"`
}

// Detail is the response representation of a trigger.
//
// Metadata and Resources are attached only for hydrated responses.
type Detail struct {
	Summary

	Metadata  *Metadata  `json:"metadata,omitempty"`
	Resources *Resources `json:"resources,omitempty"`
}

func (d Detail) Equal(o Detail) bool {
	if !d.Summary.Equal(o.Summary) {
		return false
	}
	if (d.Metadata == nil) != (o.Metadata == nil) {
		return false
	}
	if d.Metadata != nil && !d.Metadata.Equal(*o.Metadata) {
		return false
	}
	if (d.Resources == nil) != (o.Resources == nil) {
		return false
	}
	if d.Resources != nil && *d.Resources != *o.Resources {
		return false
	}
	return true
}
