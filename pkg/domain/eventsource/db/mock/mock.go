package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wovenml/weavefab/pkg/domain/eventsource"
	kdbes "github.com/wovenml/weavefab/pkg/domain/eventsource/db"
	dbmock "github.com/wovenml/weavefab/pkg/domain/internal/db/mock"
)

type EventSourceInterface struct {
	Impl struct {
		Get func(context.Context, uuid.UUID) (eventsource.EventSource, error)
	}
	Calls struct {
		Get dbmock.CallLog[struct{ Id uuid.UUID }]
	}
}

func NewEventSourceInterface() *EventSourceInterface {
	return &EventSourceInterface{}
}

var _ kdbes.EventSourceInterface = &EventSourceInterface{}

func (m *EventSourceInterface) Get(ctx context.Context, id uuid.UUID) (eventsource.EventSource, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ Id uuid.UUID }{Id: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}

	panic(errors.New("it should not be called: EventSourceInterface.Get"))
}
