package registry

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Module is the interface all built-in modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Handler holds the compiled Go parts of a service handler.
type Handler struct {
	// NewInput returns a fresh pointer to the handler's input struct. It may
	// return a *struct{} for handlers that take no arguments.
	NewInput func() any

	// InputType is the (non-pointer) reflect type of the input struct, used
	// for manifest/code parity checking.
	InputType reflect.Type

	// Fn is the handler function, with signature
	// func(ctx context.Context, input *T) (any, error).
	Fn any
}

// RegisterHandler registers a Go function under a handler name. Registering
// the same name twice is a programmer error and panics.
func (r *Registry) RegisterHandler(name string, handler *Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering service handler.", "name", name)
	r.handlers[name] = handler
}

// Handler returns the registered handler for a name, if any.
func (r *Registry) Handler(name string) (*Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}
