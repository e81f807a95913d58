package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a loaded service
// catalog. Order preserves the sequence in which services appeared across the
// manifest files, for display purposes only.
type Model struct {
	Services map[string]*ServiceSpec
	Order    []string
}

// NewModel creates an empty catalog model.
func NewModel() *Model {
	return &Model{Services: make(map[string]*ServiceSpec)}
}

// Add inserts a service spec, preserving insertion order. It reports whether
// the id was new; a duplicate id leaves the model unchanged.
func (m *Model) Add(spec *ServiceSpec) bool {
	if _, exists := m.Services[spec.ID]; exists {
		return false
	}
	m.Services[spec.ID] = spec
	m.Order = append(m.Order, spec.ID)
	return true
}

// ServiceSpec is the format-agnostic representation of one declared service.
type ServiceSpec struct {
	ID          string
	DisplayName string
	Description string

	// Handler names the registered Go handler this service binds to, the way
	// a manifest's lifecycle block names its on_run handler.
	Handler string

	Fields map[string]*FieldSpec

	// FieldOrder preserves manifest declaration order for introspection and
	// form generation. Validation never depends on it.
	FieldOrder []string
}

// FieldSpec defines a single named input field of a service.
type FieldSpec struct {
	Name        string
	DisplayName string
	Description string
	Required    bool
	Default     *cty.Value
	Selector    *Selector
}

// Loader is the interface for a format-specific manifest loader. Load reads
// service definitions from the given paths, translates them into the
// format-agnostic model, and drops (with a logged warning) any individual
// definition that fails schema validation.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
