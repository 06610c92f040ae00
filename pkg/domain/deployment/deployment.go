// Package deployment locates running model servers for pipelines.
//
// Model servers are provisioned elsewhere; this package only answers
// "which server corresponds to (pipeline, step, model)?" against a
// Provider, without retrying, caching or provisioning anything.
package deployment

import (
	"context"
	"fmt"
	"time"

	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
)

// Service is one model server as a Provider reports it.
type Service struct {
	Name             string
	PipelineName     string
	PipelineStepName string
	ModelName        string
	Running          bool
	PredictionURL    string
	Created          time.Time
}

func (s Service) Equal(o Service) bool {
	return s.Name == o.Name &&
		s.PipelineName == o.PipelineName &&
		s.PipelineStepName == o.PipelineStepName &&
		s.ModelName == o.ModelName &&
		s.Running == o.Running &&
		s.PredictionURL == o.PredictionURL &&
		s.Created.Equal(o.Created)
}

// Provider enumerates model servers from some serving infrastructure.
type Provider interface {
	// FindModelServer lists model servers matching the given attributes,
	// most recent first. Empty string attributes match anything.
	//
	// With running, only servers currently able to serve are listed.
	FindModelServer(
		ctx context.Context,
		pipeline string, step string, model string,
		running bool,
	) ([]Service, error)
}

// FindService resolves the model server for the given attributes.
//
// When more than one server matches, the most recent one wins. When none
// does, the error wraps ErrMissing and names every search parameter.
func FindService(
	ctx context.Context,
	provider Provider,
	pipeline string, step string, model string,
	running bool,
) (Service, error) {
	services, err := provider.FindModelServer(ctx, pipeline, step, model, running)
	if err != nil {
		return Service{}, err
	}
	if len(services) == 0 {
		return Service{}, fmt.Errorf(
			"no model server found for pipeline='%s', step='%s', model='%s', running=%t: %w",
			pipeline, step, model, running, kerr.ErrMissing,
		)
	}
	return services[0], nil
}
