// Sentinel conditions of the weavefab domain.
//
// Storage and lookup layers wrap these so that callers can branch with
// errors.Is without knowing which backend produced the failure.
package errors

import "errors"

// ErrMissing: the requested entity, flavor or service does not exist.
var ErrMissing = errors.New("missing")

// ErrInvalidArgument: the caller passed an out-of-contract parameter
// (e.g. non-positive page or size). Never coerced to a default.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUninitialized: the plugin flavor is registered but its plugin
// singleton is not instantiated yet. Distinct from ErrMissing so that
// callers can tell "does not exist" from "exists but not ready".
var ErrUninitialized = errors.New("uninitialized")

// ErrNotHydrated: a lazy-loaded facet of a response was accessed before
// hydration.
var ErrNotHydrated = errors.New("not hydrated")
