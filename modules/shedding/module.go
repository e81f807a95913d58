// Package shedding provides the log_shedding service handler.
package shedding

import (
	"context"
	"reflect"

	"github.com/vk/habitatgo/internal/carelog"
	"github.com/vk/habitatgo/internal/ctxlog"
	"github.com/vk/habitatgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	Store *carelog.Store
}

// Input defines the arguments for the log_shedding service.
type Input struct {
	Complete bool   `hgo:"complete"`
	Notes    string `hgo:"notes,optional"`
}

// OnLogShedding records a shedding event in the care log.
func (m *Module) OnLogShedding(ctx context.Context, input *Input) (any, error) {
	event := m.Store.LogShedding(input.Complete, input.Notes)
	ctxlog.FromContext(ctx).Info("Shedding logged.", "complete", event.Complete)
	return event, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnLogShedding", &registry.Handler{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        m.OnLogShedding,
	})
}
