// The webhook integration: ships the webhook event source flavor.
package webhook

import (
	"github.com/wovenml/weavefab/pkg/domain/eventsource/webhook"
	"github.com/wovenml/weavefab/pkg/domain/integration"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

type Integration struct{}

var _ integration.Integration = Integration{}

func (Integration) Name() string {
	return "webhook"
}

func (Integration) PluginFlavors() []plugin.Flavor {
	return []plugin.Flavor{webhook.Flavor{}}
}
