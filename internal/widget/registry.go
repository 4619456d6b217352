package widget

import (
	"sync"

	"perkgrid/internal/dom"
	"perkgrid/pkg/logging"
)

// TagName is the element name perk grids are registered under.
const TagName = "perk-grid"

// Factory creates the widget for an element.
type Factory func(el *dom.Element) Widget

// Registry maps element names to widget factories.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Factory)}
}

// Define registers factory for tag. Redefining a tag is a no-op that logs a
// warning and returns false.
func (r *Registry) Define(tag string, factory Factory) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[tag]; exists {
		logging.Warn(subsystem, "Cannot re-register %s custom element. It was already registered.", tag)
		return false
	}
	r.defs[tag] = factory
	return true
}

// Get returns the factory for tag.
func (r *Registry) Get(tag string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.defs[tag]
	return f, ok
}

// Defined reports whether tag has a factory.
func (r *Registry) Defined(tag string) bool {
	_, ok := r.Get(tag)
	return ok
}

// Upgrade creates widgets for every element under root whose tag is
// registered, in document order.
func (r *Registry) Upgrade(root *dom.Element) []Widget {
	var out []Widget
	for _, el := range root.QueryAll("", "") {
		if f, ok := r.Get(el.Tag()); ok {
			out = append(out, f(el))
		}
	}
	return out
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register defines the perk-grid element on the process-wide registry. Its
// hosts read their attributes from the element's data-* attributes. It
// returns false if perk-grid was already registered.
func Register(cfg Config) bool {
	return defaultRegistry.Define(TagName, func(el *dom.Element) Widget {
		return NewHost(el, ParseDataset(Dataset(el)), cfg)
	})
}

// Registered reports whether perk-grid is defined on the process-wide
// registry.
func Registered() bool {
	return defaultRegistry.Defined(TagName)
}
