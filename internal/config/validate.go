package config

import (
	"github.com/zclconf/go-cty/cty/convert"
)

// ValidateServiceSpec checks a translated service definition for internal
// consistency. It returns the first defect found, or nil for a sound spec.
// Loaders call this before admitting a definition into the model.
func ValidateServiceSpec(spec *ServiceSpec) *SchemaError {
	seen := make(map[string]struct{}, len(spec.FieldOrder))
	for _, name := range spec.FieldOrder {
		if _, dup := seen[name]; dup {
			return schemaErrf(spec.ID, name, DuplicateFieldName, "field declared more than once")
		}
		seen[name] = struct{}{}

		field, ok := spec.Fields[name]
		if !ok {
			continue
		}
		if err := validateFieldSpec(spec.ID, field); err != nil {
			return err
		}
	}
	return nil
}

func validateFieldSpec(serviceID string, field *FieldSpec) *SchemaError {
	sel := field.Selector

	switch sel.Kind {
	case SelectorNumber:
		if sel.Min != nil && sel.Max != nil && *sel.Min > *sel.Max {
			return schemaErrf(serviceID, field.Name, InvalidRange,
				"min %v is greater than max %v", *sel.Min, *sel.Max)
		}
		if sel.Step != nil && *sel.Step <= 0 {
			return schemaErrf(serviceID, field.Name, InvalidRange,
				"step %v must be positive", *sel.Step)
		}
	case SelectorSelect:
		if len(sel.Options) == 0 {
			return schemaErrf(serviceID, field.Name, InvalidRange,
				"select field declares no options")
		}
		seen := make(map[string]struct{}, len(sel.Options))
		for _, opt := range sel.Options {
			if _, dup := seen[opt]; dup {
				return schemaErrf(serviceID, field.Name, InvalidRange,
					"duplicate option %q", opt)
			}
			seen[opt] = struct{}{}
		}
	}

	if field.Default == nil {
		return nil
	}

	// A required field has no fallback, by contract.
	if field.Required {
		return schemaErrf(serviceID, field.Name, InvalidDefault,
			"required field must not declare a default")
	}

	converted, err := convert.Convert(*field.Default, sel.CtyType())
	if err != nil || converted.IsNull() {
		return schemaErrf(serviceID, field.Name, InvalidDefault,
			"default is not a valid %s value", sel.Kind)
	}

	switch sel.Kind {
	case SelectorSelect:
		found := false
		for _, opt := range sel.Options {
			if converted.AsString() == opt {
				found = true
				break
			}
		}
		if !found {
			return schemaErrf(serviceID, field.Name, InvalidDefault,
				"default %q is not one of the declared options", converted.AsString())
		}
	case SelectorNumber:
		v, _ := converted.AsBigFloat().Float64()
		if sel.Min != nil && v < *sel.Min {
			return schemaErrf(serviceID, field.Name, InvalidDefault,
				"default %v is below min %v", v, *sel.Min)
		}
		if sel.Max != nil && v > *sel.Max {
			return schemaErrf(serviceID, field.Name, InvalidDefault,
				"default %v is above max %v", v, *sel.Max)
		}
		// A default must satisfy every constraint the field imposes on callers,
		// or the defaulted value would fail its own revalidation.
		if !sel.InStep(v) {
			return schemaErrf(serviceID, field.Name, InvalidDefault,
				"default %v is not a multiple of step %v", v, *sel.Step)
		}
	}

	// Normalize the stored default to the selector's type so downstream
	// consumers never see, e.g., a number where a text default was written.
	*field.Default = converted
	return nil
}
