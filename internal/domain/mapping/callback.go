package mapping

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnresolvedCallback is returned when a named callback is applied before
// its rule set was resolved against a Registry.
var ErrUnresolvedCallback = errors.New("mapping: callback not resolved")

// Callback transforms one raw field value.
type Callback interface {
	Apply(ctx context.Context, value any) (any, error)
}

// Func adapts a plain function to Callback.
type Func func(ctx context.Context, value any) (any, error)

// Apply calls f.
func (f Func) Apply(ctx context.Context, value any) (any, error) {
	return f(ctx, value)
}

// Named refers to a callback registered under a name. It must be resolved
// with RuleSet.Resolve before use.
type Named string

// Apply always fails; named callbacks are replaced during Resolve.
func (n Named) Apply(context.Context, any) (any, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnresolvedCallback, string(n))
}

// Registry resolves named callbacks.
type Registry interface {
	Lookup(name string) (Callback, bool)
}

// RegistryMap is a static Registry.
type RegistryMap map[string]Callback

// Lookup returns the callback registered under name.
func (m RegistryMap) Lookup(name string) (Callback, bool) {
	cb, ok := m[name]
	return cb, ok
}
