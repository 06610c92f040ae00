// Package pipelinerun is the in-built pipeline-run action flavor.
//
// Triggers carrying this action flavor start a pipeline run when their
// event source fires. Submitting the run is the pipeline engine's work;
// this plugin owns only the shape of the action configuration.
package pipelinerun

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wovenml/weavefab/pkg/api/types/flavors"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

const FlavorName = "pipeline_run"

type Flavor struct{}

var _ plugin.Flavor = Flavor{}

func (Flavor) Type() plugin.Type       { return plugin.TypeAction }
func (Flavor) SubType() plugin.SubType { return plugin.SubTypePipelineRun }
func (Flavor) Name() string            { return FlavorName }

func (Flavor) NewPlugin() plugin.Plugin {
	return &Action{}
}

func (Flavor) Response(hydrate bool) flavors.Response {
	resp := flavors.Response{
		Body: flavors.ResponseBody{
			Name:    FlavorName,
			Type:    string(plugin.TypeAction),
			SubType: string(plugin.SubTypePipelineRun),
		},
	}
	if hydrate {
		resp.Metadata = &flavors.ResponseMetadata{
			Description: "starts a pipeline run",
			ConfigSchema: map[string]any{
				"pipeline_id": map[string]any{
					"type": "string", "format": "uuid", "required": true,
				},
				"run_name_template": map[string]any{
					"type": "string", "required": false,
				},
				"parameters": map[string]any{
					"type": "object", "required": false,
				},
			},
		}
	}
	return resp
}

type Action struct{}

var _ plugin.Plugin = &Action{}

// ValidateConfiguration expects:
//
//   - "pipeline_id": uuid of the pipeline to run
//   - "run_name_template": optional, name template of spawned runs
//   - "parameters": optional, mapping passed to the run as-is
func (*Action) ValidateConfiguration(conf map[string]any) error {
	raw, ok := conf["pipeline_id"]
	if !ok {
		return fmt.Errorf(`pipeline run config requires "pipeline_id": %w`, kerr.ErrInvalidArgument)
	}
	expr, ok := raw.(string)
	if !ok {
		return fmt.Errorf(`"pipeline_id" should be a uuid string: %w`, kerr.ErrInvalidArgument)
	}
	if _, err := uuid.Parse(expr); err != nil {
		return fmt.Errorf(`"pipeline_id" is not a uuid (%s): %w`, expr, kerr.ErrInvalidArgument)
	}

	if raw, ok := conf["run_name_template"]; ok {
		if _, isString := raw.(string); !isString {
			return fmt.Errorf(`"run_name_template" should be a string: %w`, kerr.ErrInvalidArgument)
		}
	}

	if raw, ok := conf["parameters"]; ok {
		if _, isMap := raw.(map[string]any); !isMap {
			return fmt.Errorf(`"parameters" should be a mapping: %w`, kerr.ErrInvalidArgument)
		}
	}

	return nil
}
