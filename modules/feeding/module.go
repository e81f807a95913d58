// Package feeding provides the log_feeding service handler.
package feeding

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

// Input defines the arguments for the log_feeding service.
type Input struct {
	FoodType string `hgo:"food_type"`
	FoodSize string `hgo:"food_size"`
	Notes    string `hgo:"notes,optional"`
}

// OnLogFeeding records a feeding event in the care log.
func (m *Module) OnLogFeeding(ctx context.Context, input *Input) (any, error) {
	event := m.Store.LogFeeding(input.FoodType, input.FoodSize, input.Notes)
	ctxlog.FromContext(ctx).Info("Feeding logged.",
		"food_type", event.FoodType, "food_size", event.FoodSize)
	return event, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnLogFeeding", &registry.Handler{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        m.OnLogFeeding,
	})
}
