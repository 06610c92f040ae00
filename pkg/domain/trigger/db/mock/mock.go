package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wovenml/weavefab/pkg/api/types/pages"
	dbmock "github.com/wovenml/weavefab/pkg/domain/internal/db/mock"
	"github.com/wovenml/weavefab/pkg/domain/trigger"
	kdbtrigger "github.com/wovenml/weavefab/pkg/domain/trigger/db"
)

type TriggerInterface struct {
	Impl struct {
		Register func(context.Context, trigger.Spec) (trigger.Trigger, error)
		Get      func(context.Context, uuid.UUID) (trigger.Response, error)
		Find     func(context.Context, trigger.Filter, int, int) (pages.Page[trigger.Response], error)
		Update   func(context.Context, uuid.UUID, trigger.Update) (trigger.Trigger, error)
		Delete   func(context.Context, uuid.UUID) error
	}
	Calls struct {
		Register dbmock.CallLog[trigger.Spec]
		Get      dbmock.CallLog[struct{ Id uuid.UUID }]
		Find     dbmock.CallLog[struct {
			Filter trigger.Filter
			Page   int
			Size   int
		}]
		Update dbmock.CallLog[struct {
			Id  uuid.UUID
			Upd trigger.Update
		}]
		Delete dbmock.CallLog[struct{ Id uuid.UUID }]
	}
}

func NewTriggerInterface() *TriggerInterface {
	return &TriggerInterface{}
}

var _ kdbtrigger.TriggerInterface = &TriggerInterface{}

func (m *TriggerInterface) Register(ctx context.Context, spec trigger.Spec) (trigger.Trigger, error) {
	m.Calls.Register = append(m.Calls.Register, spec)
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, spec)
	}

	panic(errors.New("it should not be called: TriggerInterface.Register"))
}

func (m *TriggerInterface) Get(ctx context.Context, id uuid.UUID) (trigger.Response, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ Id uuid.UUID }{Id: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}

	panic(errors.New("it should not be called: TriggerInterface.Get"))
}

func (m *TriggerInterface) Find(ctx context.Context, filter trigger.Filter, page int, size int) (pages.Page[trigger.Response], error) {
	m.Calls.Find = append(m.Calls.Find, struct {
		Filter trigger.Filter
		Page   int
		Size   int
	}{Filter: filter, Page: page, Size: size})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, filter, page, size)
	}

	panic(errors.New("it should not be called: TriggerInterface.Find"))
}

func (m *TriggerInterface) Update(ctx context.Context, id uuid.UUID, upd trigger.Update) (trigger.Trigger, error) {
	m.Calls.Update = append(m.Calls.Update, struct {
		Id  uuid.UUID
		Upd trigger.Update
	}{Id: id, Upd: upd})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, id, upd)
	}

	panic(errors.New("it should not be called: TriggerInterface.Update"))
}

func (m *TriggerInterface) Delete(ctx context.Context, id uuid.UUID) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ Id uuid.UUID }{Id: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}

	panic(errors.New("it should not be called: TriggerInterface.Delete"))
}
