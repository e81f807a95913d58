package registry

import (
	"fmt"
	"sync"

	"github.com/vk/habitatgo/internal/config"
)

// Service pairs a loaded spec with its bound handler. Entries are owned by
// the Registry and live until unregistration or teardown.
type Service struct {
	Spec    *config.ServiceSpec
	Handler *Handler
}

// Registry holds the registered handlers and bound services for a single
// engine instance.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]*Handler
	services map[string]*Service
	order    []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]*Handler),
		services: make(map[string]*Service),
	}
}

// Register binds a handler to a service spec. It fails with a
// DuplicateServiceID schema error if the id is already registered.
func (r *Registry) Register(spec *config.ServiceSpec, handler *Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[spec.ID]; exists {
		return &config.SchemaError{
			Service: spec.ID,
			Reason:  config.DuplicateServiceID,
			Detail:  "service id already registered",
		}
	}
	r.services[spec.ID] = &Service{Spec: spec, Handler: handler}
	r.order = append(r.order, spec.ID)
	return nil
}

// Unregister removes a service binding. It reports whether the id was
// present; removing an absent id is a no-op.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[id]; !exists {
		return false
	}
	delete(r.services, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Lookup returns the bound service for an id. It is a pure read with no side
// effects.
func (r *Registry) Lookup(id string) (*Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[id]
	return svc, ok
}

// List returns the specs of all bound services in registration order, for
// introspection and form generation.
func (r *Registry) List() []*config.ServiceSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*config.ServiceSpec, 0, len(r.order))
	for _, id := range r.order {
		if svc, ok := r.services[id]; ok {
			specs = append(specs, svc.Spec)
		}
	}
	return specs
}

// PopulateFromModel binds every service definition in a loaded catalog to its
// named handler. A definition naming an unknown handler is an error: the
// manifests and the compiled binary are out of sync.
func (r *Registry) PopulateFromModel(model *config.Model) error {
	for _, id := range model.Order {
		spec := model.Services[id]
		handler, ok := r.Handler(spec.Handler)
		if !ok {
			return fmt.Errorf("service %q: no handler named %q is registered", id, spec.Handler)
		}
		if err := r.Register(spec, handler); err != nil {
			return err
		}
	}
	return nil
}
