package transforms

import (
	"fmt"

	"github.com/smohring/contao-cearch-pro/internal/core/services"
)

// Registry maps transform names to implementations so the pipeline can
// be assembled from configuration.
type Registry struct {
	transforms map[string]services.Transform
}

// NewRegistry creates an empty transform registry.
func NewRegistry() *Registry {
	return &Registry{
		transforms: make(map[string]services.Transform),
	}
}

// Register adds a transform under name, replacing any previous one.
func (r *Registry) Register(name string, tr services.Transform) {
	r.transforms[name] = tr
}

// Build resolves the named transforms in order.
func (r *Registry) Build(names []string) ([]services.Transform, error) {
	result := make([]services.Transform, 0, len(names))
	for _, name := range names {
		tr, ok := r.transforms[name]
		if !ok {
			return nil, fmt.Errorf("unknown transform: %s", name)
		}
		result = append(result, tr)
	}
	return result, nil
}

// Has returns true if a transform with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.transforms[name]
	return ok
}

// Names returns all registered transform names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	return names
}
