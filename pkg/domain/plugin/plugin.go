// Package plugin holds the flavor taxonomy of weavefab's automation
// plugins and the registry resolving them at runtime.
//
// A "flavor" is a named implementation of a plugin capability, classified
// by a two-level taxonomy: Type (what role the plugin plays) and SubType
// (by which mechanism). A flavor is identified by the triple
// (Type, SubType, Name), unique as a whole; the Name alone is unique only
// within its (Type, SubType) pair.
package plugin

import "github.com/wovenml/weavefab/pkg/api/types/flavors"

type Type string

const (
	TypeEventSource Type = "event_source"
	TypeAction      Type = "action"
)

type SubType string

const (
	SubTypeSchedule    SubType = "schedule"
	SubTypeWebhook     SubType = "webhook"
	SubTypePipelineRun SubType = "pipeline_run"
)

// Flavor describes one plugin implementation: its identity triple, a
// factory for the plugin itself, and an API self-description.
//
// Flavors are stateless. The registry instantiates the plugin once per
// process and caches it; consumers always re-resolve through the registry
// instead of holding plugin references.
type Flavor interface {
	Type() Type
	SubType() SubType
	Name() string

	// NewPlugin builds the plugin this flavor stands for.
	NewPlugin() Plugin

	// Response renders this flavor for the API layer.
	//
	// With hydrate, the response also carries the metadata facet
	// (description, config schema).
	Response(hydrate bool) flavors.Response
}

// Plugin is an instantiated flavor: the handler which understands the
// opaque configuration mappings stored on event sources and triggers.
type Plugin interface {
	// ValidateConfiguration checks an opaque configuration mapping
	// against this plugin's expectations.
	ValidateConfiguration(conf map[string]any) error
}
