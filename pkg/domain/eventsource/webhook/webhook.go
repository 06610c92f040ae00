// Package webhook is the webhook event source flavor, contributed by the
// webhook integration.
//
// Events arrive as HTTP calls from outside; the configuration pins the
// shared secret used to authenticate them.
package webhook

import (
	"fmt"

	"github.com/wovenml/weavefab/pkg/api/types/flavors"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

const FlavorName = "webhook"

// secrets shorter than this are refused.
const minSecretLength = 8

type Flavor struct{}

var _ plugin.Flavor = Flavor{}

func (Flavor) Type() plugin.Type       { return plugin.TypeEventSource }
func (Flavor) SubType() plugin.SubType { return plugin.SubTypeWebhook }
func (Flavor) Name() string            { return FlavorName }

func (Flavor) NewPlugin() plugin.Plugin {
	return &EventSource{}
}

func (Flavor) Response(hydrate bool) flavors.Response {
	resp := flavors.Response{
		Body: flavors.ResponseBody{
			Name:    FlavorName,
			Type:    string(plugin.TypeEventSource),
			SubType: string(plugin.SubTypeWebhook),
		},
	}
	if hydrate {
		resp.Metadata = &flavors.ResponseMetadata{
			Description: "receives events over HTTP",
			ConfigSchema: map[string]any{
				"secret": map[string]any{
					"type": "string", "required": true, "sensitive": true,
				},
			},
		}
	}
	return resp
}

type EventSource struct{}

var _ plugin.Plugin = &EventSource{}

// ValidateConfiguration expects:
//
//   - "secret": shared secret signing incoming calls, 8 characters or more
func (*EventSource) ValidateConfiguration(conf map[string]any) error {
	raw, ok := conf["secret"]
	if !ok {
		return fmt.Errorf(`webhook config requires "secret": %w`, kerr.ErrInvalidArgument)
	}
	secret, ok := raw.(string)
	if !ok {
		return fmt.Errorf(`"secret" should be a string: %w`, kerr.ErrInvalidArgument)
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf(
			`"secret" should be %d characters or more: %w`,
			minSecretLength, kerr.ErrInvalidArgument,
		)
	}
	return nil
}
