package plugin

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/wovenml/weavefab/pkg/api/types/flavors"
	"github.com/wovenml/weavefab/pkg/api/types/pages"
	kerr "github.com/wovenml/weavefab/pkg/domain/errors"
)

// RegistryEntry pairs a registered flavor with its plugin singleton.
//
// The plugin is created lazily by Registry.InitializePlugins; until then
// it is nil. Entries are owned by the registry exclusively.
type RegistryEntry struct {
	flavor Flavor
	plugin Plugin
}

func (e *RegistryEntry) Flavor() Flavor {
	return e.flavor
}

// flavorTable is the per-(type, subtype) level of the registry.
//
// order tracks registration order of names, so that enumeration and
// pagination are stable across calls.
type flavorTable struct {
	entries map[string]*RegistryEntry
	order   []string
}

// Registry resolves plugin flavors by (type, subtype, name).
//
// Lifecycle: NewRegistry -> Register (for each flavor, builtins first)
// -> InitializePlugins -> ready for concurrent reads. Writes happen only
// in that startup window; the mutex makes a read racing the startup
// barrier well-defined instead of corrupt.
type Registry struct {
	mu     sync.RWMutex
	logger *log.Logger
	table  map[Type]map[SubType]*flavorTable
	ready  bool
}

func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Registry{
		logger: logger,
		table:  map[Type]map[SubType]*flavorTable{},
	}
}

// Register inserts f under its identity triple.
//
// Registration is idempotent: when the triple is already taken, this is
// a no-op and the earlier flavor stays. Builtins are registered before
// integration flavors, so a name conflict resolves to the builtin.
// This is the merge policy, not an error.
func (r *Registry) Register(f Flavor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subtypes, ok := r.table[f.Type()]
	if !ok {
		subtypes = map[SubType]*flavorTable{}
		r.table[f.Type()] = subtypes
	}
	tbl, ok := subtypes[f.SubType()]
	if !ok {
		tbl = &flavorTable{entries: map[string]*RegistryEntry{}}
		subtypes[f.SubType()] = tbl
	}

	if _, ok := tbl.entries[f.Name()]; ok {
		r.logger.Printf(
			"flavor %s is already registered for type %s and subtype %s. skipped.",
			f.Name(), f.Type(), f.SubType(),
		)
		return
	}

	tbl.entries[f.Name()] = &RegistryEntry{flavor: f}
	tbl.order = append(tbl.order, f.Name())
	r.logger.Printf(
		"registered plugin flavor %s for type %s and subtype %s",
		f.Name(), f.Type(), f.SubType(),
	)
}

// entry resolves the identity triple, level by level. Callers hold r.mu.
func (r *Registry) entry(t Type, s SubType, name string) (*RegistryEntry, error) {
	subtypes, ok := r.table[t]
	if !ok {
		return nil, fmt.Errorf(
			"no flavor %s for type %s and subtype %s: %w", name, t, s, kerr.ErrMissing,
		)
	}
	tbl, ok := subtypes[s]
	if !ok {
		return nil, fmt.Errorf(
			"no flavor %s for type %s and subtype %s: %w", name, t, s, kerr.ErrMissing,
		)
	}
	e, ok := tbl.entries[name]
	if !ok {
		return nil, fmt.Errorf(
			"no flavor %s for type %s and subtype %s: %w", name, t, s, kerr.ErrMissing,
		)
	}
	return e, nil
}

// FlavorClass returns the flavor registered under the triple.
//
// A miss at any level of the lookup is ErrMissing.
func (r *Registry) FlavorClass(t Type, s SubType, name string) (Flavor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.entry(t, s, name)
	if err != nil {
		return nil, err
	}
	return e.flavor, nil
}

// Plugin returns the plugin singleton registered under the triple.
//
// When the triple is unknown, ErrMissing. When the triple is known but
// InitializePlugins has not run yet, ErrUninitialized: the caller can
// tell "does not exist" from "exists but not ready".
func (r *Registry) Plugin(t Type, s SubType, name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.entry(t, s, name)
	if err != nil {
		return nil, err
	}
	if e.plugin == nil {
		return nil, fmt.Errorf(
			"plugin of flavor %s (type %s, subtype %s) is not initialized: %w",
			name, t, s, kerr.ErrUninitialized,
		)
	}
	return e.plugin, nil
}

// SubTypes lists subtypes registered for t. Unknown t is ErrMissing.
func (r *Registry) SubTypes(t Type) ([]SubType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subtypes, ok := r.table[t]
	if !ok {
		return nil, fmt.Errorf("no flavors for type %s: %w", t, kerr.ErrMissing)
	}
	found := make([]SubType, 0, len(subtypes))
	for s := range subtypes {
		found = append(found, s)
	}
	return found, nil
}

// names snapshots the registration-ordered flavor names of (t, s).
// Unknown pairs snapshot as empty. Callers hold r.mu.
func (r *Registry) names(t Type, s SubType) []string {
	if subtypes, ok := r.table[t]; ok {
		if tbl, ok := subtypes[s]; ok {
			names := make([]string, len(tbl.order))
			copy(names, tbl.order)
			return names
		}
	}
	return []string{}
}

// paginate validates the pagination window and slices items.
//
// Pages are 1-origin: offset = (page-1)*size. page and size must both be
// positive non-zero, otherwise ErrInvalidArgument; an out-of-range page
// against a known pair is an empty slice, not an error.
func paginate[T any](items []T, page int, size int) ([]T, error) {
	if page <= 0 || size <= 0 {
		return nil, fmt.Errorf(
			"both page (%d) and size (%d) must be positive non-zero integers: %w",
			page, size, kerr.ErrInvalidArgument,
		)
	}
	start := (page - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}

// FlavorNames returns the page-th page of flavor names of (t, s), in
// registration order.
func (r *Registry) FlavorNames(t Type, s SubType, page int, size int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return paginate(r.names(t, s), page, size)
}

// Flavors lists all flavors of (t, s) in registration order. An unknown
// pair is an empty list, not an error.
func (r *Registry) Flavors(t Type, s SubType) []Flavor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := []Flavor{}
	if subtypes, ok := r.table[t]; ok {
		if tbl, ok := subtypes[s]; ok {
			for _, name := range tbl.order {
				found = append(found, tbl.entries[name].flavor)
			}
		}
	}
	return found
}

// FlavorResponses builds the page-th page of API responses of flavors of
// (t, s). Each flavor renders itself, hydrated or not per the flag.
func (r *Registry) FlavorResponses(
	t Type, s SubType, page int, size int, hydrate bool,
) (pages.Page[flavors.Response], error) {
	all := r.Flavors(t, s)

	sli, err := paginate(all, page, size)
	if err != nil {
		return pages.Page[flavors.Response]{}, err
	}

	items := make([]flavors.Response, len(sli))
	for i, f := range sli {
		items[i] = f.Response(hydrate)
	}
	return pages.New(page, size, len(all), items), nil
}

// InitializePlugins instantiates the plugin of every registered entry
// and marks the registry ready.
//
// Call once at startup, after all Register calls. Calling again rebuilds
// the singletons; flavors are stateless factories, so that is harmless.
func (r *Registry) InitializePlugins() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, subtypes := range r.table {
		for _, tbl := range subtypes {
			for _, name := range tbl.order {
				e := tbl.entries[name]
				e.plugin = e.flavor.NewPlugin()
			}
		}
	}
	r.ready = true
}

// Ready reports whether InitializePlugins has completed.
func (r *Registry) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}
