package mocks

import (
	"context"
	"errors"

	"github.com/wovenml/weavefab/pkg/domain/deployment"
	dbmock "github.com/wovenml/weavefab/pkg/domain/internal/db/mock"
)

type Provider struct {
	Impl struct {
		FindModelServer func(
			ctx context.Context,
			pipeline string, step string, model string,
			running bool,
		) ([]deployment.Service, error)
	}
	Calls struct {
		FindModelServer dbmock.CallLog[struct {
			Pipeline string
			Step     string
			Model    string
			Running  bool
		}]
	}
}

func NewProvider() *Provider {
	return &Provider{}
}

var _ deployment.Provider = &Provider{}

func (m *Provider) FindModelServer(
	ctx context.Context,
	pipeline string, step string, model string,
	running bool,
) ([]deployment.Service, error) {
	m.Calls.FindModelServer = append(m.Calls.FindModelServer, struct {
		Pipeline string
		Step     string
		Model    string
		Running  bool
	}{Pipeline: pipeline, Step: step, Model: model, Running: running})
	if m.Impl.FindModelServer != nil {
		return m.Impl.FindModelServer(ctx, pipeline, step, model, running)
	}

	panic(errors.New("it should not be called: Provider.FindModelServer"))
}
