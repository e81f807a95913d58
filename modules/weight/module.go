// Package weight provides the log_weight service handler.
package weight

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

// Input defines the arguments for the log_weight service.
type Input struct {
	Weight float64 `hgo:"weight"`
	Unit   string  `hgo:"unit,optional"`
	Notes  string  `hgo:"notes,optional"`
}

// OnLogWeight records a weight measurement in the care log.
func (m *Module) OnLogWeight(ctx context.Context, input *Input) (any, error) {
	event := m.Store.LogWeight(input.Weight, input.Unit, input.Notes)
	ctxlog.FromContext(ctx).Info("Weight logged.",
		"weight", event.Weight, "unit", event.Unit, "trend", m.Store.WeightTrend())
	return event, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnLogWeight", &registry.Handler{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        m.OnLogWeight,
	})
}
