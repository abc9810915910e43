package graph

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Factory builds a node of one registered type with the given id.
type Factory func(id NodeID) Node

// Registry maps node type names to factories.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory. Registering a name twice is a programming error
// and panics.
func (r *Registry) Register(name string, f Factory) {
	if _, ok := r.factories[name]; ok {
		panic(fmt.Sprintf("graph: node type %q registered twice", name))
	}
	r.factories[name] = f
}

// New builds a node of the named type.
func (r *Registry) New(name string, id NodeID) (Node, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, name)
	}
	n := f(id)
	if got := n.NodeBase().TypeName(); got != name {
		return nil, fmt.Errorf("graph: factory for %q built a %q", name, got)
	}
	return n, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	names := lo.Keys(r.factories)
	slices.Sort(names)
	return names
}
