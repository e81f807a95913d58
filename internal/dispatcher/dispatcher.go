// Package dispatcher routes validated service calls to their bound handlers.
//
// Each call is independent and stateless: lookup, validate, decode, invoke.
// The registry lock is released before validation begins, so a slow handler
// never blocks concurrent registrations or other calls. The dispatcher
// imposes no timeout of its own; callers that need one wrap Call with a
// context deadline and treat expiry themselves.
package dispatcher

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/vk/habitatgo/internal/ctxlog"
	"github.com/vk/habitatgo/internal/registry"
	"github.com/vk/habitatgo/internal/validator"
)

// Dispatcher is the sole call entry point of the engine.
type Dispatcher struct {
	registry *registry.Registry
}

// New creates a dispatcher over the given registry.
func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Call looks up a service, validates the raw arguments against its spec, and
// invokes the bound handler. All failures come back as *Error; the handler's
// own result is returned untouched on success.
func (d *Dispatcher) Call(ctx context.Context, id string, rawArgs map[string]any) (any, error) {
	callID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("service", id, "call_id", callID)
	ctx = ctxlog.WithLogger(ctx, logger)

	svc, ok := d.registry.Lookup(id)
	if !ok {
		logger.Debug("Call rejected: unknown service.")
		return nil, &Error{Service: id, Kind: KindServiceNotFound}
	}

	args, valErr := validator.Validate(svc.Spec, rawArgs)
	if valErr != nil {
		logger.Debug("Call rejected by validator.", "error", valErr)
		return nil, &Error{Service: id, Kind: KindInvalidArgs, Validation: valErr}
	}

	inputStruct := svc.Handler.NewInput()
	if inputStruct != nil {
		if err := decodeInput(inputStruct, args); err != nil {
			return nil, &Error{Service: id, Kind: KindHandlerFailed, Cause: err}
		}
	}

	logger.Debug("Invoking service handler.", "handler", svc.Spec.Handler)
	result, err := invoke(ctx, svc.Handler, inputStruct)
	if err != nil {
		logger.Warn("Service handler failed.", "error", err)
		return nil, &Error{Service: id, Kind: KindHandlerFailed, Cause: err}
	}

	logger.Debug("Call succeeded.")
	return result, nil
}

// invoke calls the handler function by reflection. A panicking handler is
// contained and surfaced as an ordinary error value.
func invoke(ctx context.Context, handler *registry.Handler, inputStruct any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	handlerFunc := reflect.ValueOf(handler.Fn)
	callArgs := []reflect.Value{reflect.ValueOf(ctx)}

	if inputStruct == nil {
		inputType := handlerFunc.Type().In(1)
		callArgs = append(callArgs, reflect.Zero(inputType))
	} else {
		callArgs = append(callArgs, reflect.ValueOf(inputStruct))
	}

	results := handlerFunc.Call(callArgs)
	nativeOutput, errResult := results[0].Interface(), results[1].Interface()
	if errResult != nil {
		return nil, errResult.(error)
	}
	return nativeOutput, nil
}
