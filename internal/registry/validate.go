package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/habitatgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Validate performs a strict parity check between manifests and Go code: every
// field a spec declares must have a matching tagged field on the handler's
// input struct, and vice versa, with compatible types. A mismatch means the
// binary and its manifests drifted apart, so the whole check fails loudly at
// startup rather than surfacing as a confusing per-call error later.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, svc := range r.services {
		handler := svc.Handler
		if handler == nil || handler.InputType == nil {
			if len(svc.Spec.Fields) > 0 {
				errs = append(errs, fmt.Sprintf("service '%s': manifest declares fields, but Go handler has no input struct", id))
			}
			continue
		}

		goFields := make(map[string]reflect.StructField)
		inputType := handler.InputType
		for i := 0; i < inputType.NumField(); i++ {
			field := inputType.Field(i)
			if !field.IsExported() {
				continue
			}
			tag := field.Tag.Get("hgo")
			tagName := strings.Split(tag, ",")[0]
			if tagName != "" && tagName != "-" {
				goFields[tagName] = field
			}
		}

		for name := range goFields {
			if _, ok := svc.Spec.Fields[name]; !ok {
				errs = append(errs, fmt.Sprintf("service '%s': Go struct has field for input '%s' which is not declared in manifest", id, name))
			}
		}
		for name := range svc.Spec.Fields {
			if _, ok := goFields[name]; !ok {
				errs = append(errs, fmt.Sprintf("service '%s': manifest declares field '%s' which is not found in Go struct", id, name))
			}
		}

		for name, fieldSpec := range svc.Spec.Fields {
			goField, ok := goFields[name]
			if !ok {
				continue // presence mismatch already reported
			}

			goFieldType, err := gocty.ImpliedType(reflect.Zero(goField.Type).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("service '%s', field '%s': could not imply cty type from Go field type %s: %v", id, name, goField.Type, err))
				continue
			}

			wantType := fieldSpec.Selector.CtyType()
			if !wantType.Equals(goFieldType) {
				errs = append(errs, fmt.Sprintf("service '%s', field '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
					id, name, wantType.FriendlyName(), goField.Name, goFieldType.FriendlyName()))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry parity validation passed.", "services", len(r.services))
	return nil
}
