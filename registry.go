// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import (
	"fmt"
	"sync"
)

// Registry maps a library-prefixed component name (e.g. "main/Count") to
// its [Factory] and [Descriptor]. The (external) graph compiler looks up
// components here when instantiating a graph; the core only provides the
// lookup table, not the compiler itself.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]registryEntry
}

type registryEntry struct {
	factory    Factory
	descriptor Descriptor
}

// NewRegistry returns an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]registryEntry)}
}

// Register adds name to the registry. It panics on a duplicate name, since
// that indicates two component packages were wired under the same
// identifier — a construction-time programming error, not a runtime one.
func (r *Registry) Register(name string, factory Factory, descriptor Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		panic(fmt.Sprintf("flowd: component %q already registered", name))
	}
	r.funcs[name] = registryEntry{factory: factory, descriptor: descriptor}
}

// Lookup returns the factory and descriptor registered under name.
func (r *Registry) Lookup(name string) (Factory, Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.funcs[name]
	if !ok {
		return nil, nil, false
	}
	return e.factory, e.descriptor, true
}

// Names returns every registered component name, in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}
