// Package integration wires integration-contributed plugin flavors into
// the flavor registry.
//
// Discovery is an explicit registration phase: each integration is a
// value in a closed list, exposing its flavors through PluginFlavors().
// No runtime scanning.
package integration

import (
	"github.com/wovenml/weavefab/pkg/domain/action/pipelinerun"
	"github.com/wovenml/weavefab/pkg/domain/eventsource/schedule"
	"github.com/wovenml/weavefab/pkg/domain/plugin"
)

// Integration contributes plugin flavors to the registry.
type Integration interface {
	Name() string

	// PluginFlavors lists the flavors this integration ships.
	// Pure: same flavors on every call.
	PluginFlavors() []plugin.Flavor
}

// BuiltinFlavors are registered ahead of any integration, so a name
// conflict resolves to the builtin.
func BuiltinFlavors() []plugin.Flavor {
	return []plugin.Flavor{
		schedule.Flavor{},
		pipelinerun.Flavor{},
	}
}

// RegisterAll fills reg with builtin flavors and then with the flavors
// of each active integration, in the given order. Duplicates fall under
// the registry's first-wins rule.
func RegisterAll(reg *plugin.Registry, active []Integration) {
	for _, f := range BuiltinFlavors() {
		reg.Register(f)
	}
	for _, i := range active {
		for _, f := range i.PluginFlavors() {
			reg.Register(f)
		}
	}
}
