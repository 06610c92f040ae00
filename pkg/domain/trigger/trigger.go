// Package trigger holds the trigger entity: a durable automation rule
// binding an event source (with a filter on its events) to an action
// configuration executed through a registered action flavor.
package trigger

import (
	"fmt"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

// upper bound of name and description, in runes.
const StrFieldMaxLength = 255

// Trigger is the stored record.
type Trigger struct {
	Id        uuid.UUID
	Workspace uuid.UUID

	Name        string
	Description string

	// EventSourceId points the event source activating this trigger.
	// Weak reference: the event source is owned elsewhere.
	EventSourceId uuid.UUID

	// EventFilter is interpreted only by the matching event source
	// plugin; opaque here.
	EventFilter map[string]any

	// Action is interpreted only by the action plugin identified with
	// ActionFlavor and ActionSubType; opaque here.
	Action        map[string]any
	ActionFlavor  string
	ActionSubType plugin.SubType

	IsActive bool

	Created time.Time
	Updated time.Time
}

func (t Trigger) Equal(o Trigger) bool {
	return t.Id == o.Id &&
		t.Workspace == o.Workspace &&
		t.Name == o.Name &&
		t.Description == o.Description &&
		t.EventSourceId == o.EventSourceId &&
		t.ActionFlavor == o.ActionFlavor &&
		t.ActionSubType == o.ActionSubType &&
		t.IsActive == o.IsActive &&
		t.Created.Equal(o.Created) &&
		t.Updated.Equal(o.Updated) &&
		reflect.DeepEqual(t.EventFilter, o.EventFilter) &&
		reflect.DeepEqual(t.Action, o.Action)
}

// Param is the unchecked creation payload of a trigger.
type Param struct {
	Workspace     uuid.UUID
	Name          string
	Description   string
	EventSourceId uuid.UUID
	EventFilter   map[string]any
	Action        map[string]any
	ActionFlavor  string
	ActionSubType plugin.SubType
}

// Validate checks p and seals it into a Spec.
//
// New triggers start active.
func (p Param) Validate() (Spec, error) {
	if p.Name == "" {
		return Spec{}, fmt.Errorf("trigger name is required: %w", kerr.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(p.Name) > StrFieldMaxLength {
		return Spec{}, fmt.Errorf(
			"trigger name is longer than %d: %w", StrFieldMaxLength, kerr.ErrInvalidArgument,
		)
	}
	if utf8.RuneCountInString(p.Description) > StrFieldMaxLength {
		return Spec{}, fmt.Errorf(
			"trigger description is longer than %d: %w", StrFieldMaxLength, kerr.ErrInvalidArgument,
		)
	}
	if p.Workspace == uuid.Nil {
		return Spec{}, fmt.Errorf("trigger workspace is required: %w", kerr.ErrInvalidArgument)
	}
	if p.EventSourceId == uuid.Nil {
		return Spec{}, fmt.Errorf("trigger event source is required: %w", kerr.ErrInvalidArgument)
	}
	if p.ActionFlavor == "" || p.ActionSubType == "" {
		return Spec{}, fmt.Errorf(
			"trigger action flavor and subtype are required: %w", kerr.ErrInvalidArgument,
		)
	}

	eventFilter := p.EventFilter
	if eventFilter == nil {
		eventFilter = map[string]any{}
	}
	action := p.Action
	if action == nil {
		action = map[string]any{}
	}

	return Spec{
		Workspace:     p.Workspace,
		Name:          p.Name,
		Description:   p.Description,
		EventSourceId: p.EventSourceId,
		EventFilter:   eventFilter,
		Action:        action,
		ActionFlavor:  p.ActionFlavor,
		ActionSubType: p.ActionSubType,
	}, nil
}

// Spec is a validated creation payload. Get one via Param.Validate.
type Spec struct {
	Workspace     uuid.UUID
	Name          string
	Description   string
	EventSourceId uuid.UUID
	EventFilter   map[string]any
	Action        map[string]any
	ActionFlavor  string
	ActionSubType plugin.SubType
}

func (s Spec) Equal(o Spec) bool {
	return s.Workspace == o.Workspace &&
		s.Name == o.Name &&
		s.Description == o.Description &&
		s.EventSourceId == o.EventSourceId &&
		s.ActionFlavor == o.ActionFlavor &&
		s.ActionSubType == o.ActionSubType &&
		reflect.DeepEqual(s.EventFilter, o.EventFilter) &&
		reflect.DeepEqual(s.Action, o.Action)
}

// Update is a merge-patch of a trigger: nil fields leave the stored
// value unchanged. There is no way to unset a field to its default.
type Update struct {
	Name        *string
	Description *string
	EventFilter map[string]any
	Action      map[string]any
	IsActive    *bool
}

// Apply merges u into t and returns the patched record.
//
// Pure: t itself is untouched, and so are Created/Updated (timestamps
// belong to the store). The zero Update is the identity.
func (u Update) Apply(t Trigger) Trigger {
	patched := t
	if u.Name != nil {
		patched.Name = *u.Name
	}
	if u.Description != nil {
		patched.Description = *u.Description
	}
	if u.EventFilter != nil {
		patched.EventFilter = u.EventFilter
	}
	if u.Action != nil {
		patched.Action = u.Action
	}
	if u.IsActive != nil {
		patched.IsActive = *u.IsActive
	}
	return patched
}

// Validate checks bounded fields of the patch.
func (u Update) Validate() error {
	if u.Name != nil {
		if *u.Name == "" {
			return fmt.Errorf("trigger name can not be emptied: %w", kerr.ErrInvalidArgument)
		}
		if utf8.RuneCountInString(*u.Name) > StrFieldMaxLength {
			return fmt.Errorf(
				"trigger name is longer than %d: %w", StrFieldMaxLength, kerr.ErrInvalidArgument,
			)
		}
	}
	if u.Description != nil && utf8.RuneCountInString(*u.Description) > StrFieldMaxLength {
		return fmt.Errorf(
			"trigger description is longer than %d: %w", StrFieldMaxLength, kerr.ErrInvalidArgument,
		)
	}
	return nil
}

// Filter selects triggers by equality on its non-nil fields.
type Filter struct {
	Workspace     *uuid.UUID
	Name          *string
	EventSourceId *uuid.UUID
	IsActive      *bool
	ActionFlavor  *string
	ActionSubType *plugin.SubType

	// ResourceId and ResourceType cross-reference a generic resource the
	// trigger is attached to. Generic clause building ignores them; the
	// storage layer resolves them against its attachment records.
	ResourceId   *uuid.UUID
	ResourceType *string
}
