// Package schedule is the in-built scheduler event source flavor.
//
// It emits events on a fixed cadence, so that triggers bound to it can
// start pipeline runs periodically.
package schedule

import (
	"fmt"
	"time"

	"github.com/wovenml/weavefab/pkg/api/types/flavors"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

const FlavorName = "scheduler"

type Flavor struct{}

var _ plugin.Flavor = Flavor{}

func (Flavor) Type() plugin.Type       { return plugin.TypeEventSource }
func (Flavor) SubType() plugin.SubType { return plugin.SubTypeSchedule }
func (Flavor) Name() string            { return FlavorName }

func (Flavor) NewPlugin() plugin.Plugin {
	return &EventSource{}
}

func (Flavor) Response(hydrate bool) flavors.Response {
	resp := flavors.Response{
		Body: flavors.ResponseBody{
			Name:    FlavorName,
			Type:    string(plugin.TypeEventSource),
			SubType: string(plugin.SubTypeSchedule),
		},
	}
	if hydrate {
		resp.Metadata = &flavors.ResponseMetadata{
			Description: "emits events on a fixed cadence",
			ConfigSchema: map[string]any{
				"interval": map[string]any{
					"type": "string", "format": "duration", "required": true,
				},
				"start_at": map[string]any{
					"type": "string", "format": "date-time", "required": false,
				},
			},
		}
	}
	return resp
}

// EventSource is the scheduler plugin. It is a stateless config handler;
// the loop actually ticking lives with the pipeline engine, outside this
// core.
type EventSource struct{}

var _ plugin.Plugin = &EventSource{}

// ValidateConfiguration expects:
//
//   - "interval": a Go duration expression, at least one second
//   - "start_at": optional, RFC3339 timestamp of the first event
func (*EventSource) ValidateConfiguration(conf map[string]any) error {
	raw, ok := conf["interval"]
	if !ok {
		return fmt.Errorf(`schedule config requires "interval": %w`, kerr.ErrInvalidArgument)
	}
	expr, ok := raw.(string)
	if !ok {
		return fmt.Errorf(`"interval" should be a duration expression: %w`, kerr.ErrInvalidArgument)
	}
	interval, err := time.ParseDuration(expr)
	if err != nil {
		return fmt.Errorf(`"interval" is not a duration (%s): %w`, expr, kerr.ErrInvalidArgument)
	}
	if interval < time.Second {
		return fmt.Errorf(`"interval" %s is too short: %w`, interval, kerr.ErrInvalidArgument)
	}

	if raw, ok := conf["start_at"]; ok {
		expr, ok := raw.(string)
		if !ok {
			return fmt.Errorf(`"start_at" should be a RFC3339 timestamp: %w`, kerr.ErrInvalidArgument)
		}
		if _, err := time.Parse(time.RFC3339, expr); err != nil {
			return fmt.Errorf(`"start_at" is not a RFC3339 timestamp (%s): %w`, expr, kerr.ErrInvalidArgument)
		}
	}

	return nil
}
