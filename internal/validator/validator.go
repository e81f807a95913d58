// Package validator converts raw, untyped call arguments into typed,
// constraint-checked values. All type fuzziness in the engine is confined
// here: callers may pass native Go scalars, numeric strings, or cty values,
// and handlers only ever see the coerced result.
package validator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/habitatgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Args is a validated argument set: field name to coerced value, containing
// exactly the declared fields that were supplied or defaulted. An optional
// field with no default and no supplied value is absent from the map.
type Args map[string]cty.Value

// Validate checks raw arguments against a service spec. It fails fast: the
// first defect encountered is returned and nothing else is inspected. On
// success the returned Args satisfy every selector constraint of the spec.
func Validate(spec *config.ServiceSpec, raw map[string]any) (Args, *Error) {
	out := make(Args, len(spec.Fields))

	for _, name := range spec.FieldOrder {
		field := spec.Fields[name]

		value, supplied := raw[name]
		if !supplied {
			if field.Required {
				return nil, errf(name, MissingField, "required field is missing")
			}
			if field.Default != nil {
				out[name] = *field.Default
			}
			// No value, no default: the field stays logically absent.
			continue
		}

		coerced, err := coerceValue(field, value)
		if err != nil {
			return nil, err
		}
		out[name] = coerced
	}

	// Anything the spec does not declare is caller/schema drift, not noise.
	var unknown []string
	for name := range raw {
		if _, declared := spec.Fields[name]; !declared {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errf(unknown[0], UnknownField, "field is not declared by service %q", spec.ID)
	}

	return out, nil
}

// coerceValue runs the selector-specific coercion and constraint rule for one
// supplied value.
func coerceValue(field *config.FieldSpec, v any) (cty.Value, *Error) {
	switch field.Selector.Kind {
	case config.SelectorText:
		return coerceText(field, v)
	case config.SelectorBool:
		return coerceBool(field, v)
	case config.SelectorNumber:
		return coerceNumber(field, v)
	case config.SelectorSelect:
		return coerceSelect(field, v)
	default:
		return cty.NilVal, errf(field.Name, InvalidType, "unsupported selector kind %s", field.Selector.Kind)
	}
}

func coerceText(field *config.FieldSpec, v any) (cty.Value, *Error) {
	s, ok := stringify(v)
	if !ok {
		return cty.NilVal, errf(field.Name, InvalidType, "value of type %T is not representable as text", v)
	}
	return cty.StringVal(s), nil
}

func coerceBool(field *config.FieldSpec, v any) (cty.Value, *Error) {
	switch t := v.(type) {
	case bool:
		return cty.BoolVal(t), nil
	case string:
		switch strings.ToLower(t) {
		case "true":
			return cty.True, nil
		case "false":
			return cty.False, nil
		}
		return cty.NilVal, errf(field.Name, InvalidType, "string %q is not a boolean", t)
	case cty.Value:
		if t.IsNull() {
			return cty.NilVal, errf(field.Name, InvalidType, "null is not a boolean")
		}
		if t.Type() == cty.Bool {
			return t, nil
		}
		if t.Type() == cty.String {
			return coerceBool(field, t.AsString())
		}
		return cty.NilVal, errf(field.Name, InvalidType, "%s value is not a boolean", t.Type().FriendlyName())
	default:
		return cty.NilVal, errf(field.Name, InvalidType, "value of type %T is not a boolean", v)
	}
}

func coerceNumber(field *config.FieldSpec, v any) (cty.Value, *Error) {
	f, ok := floatify(v)
	if !ok {
		return cty.NilVal, errf(field.Name, InvalidType, "value of type %T is not a number", v)
	}
	// NaN and the infinities parse as floats but have no place in a bounded
	// measurement, and NaN compares false against every constraint.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return cty.NilVal, errf(field.Name, InvalidType, "value %v is not a finite number", f)
	}

	sel := field.Selector
	if sel.Min != nil && f < *sel.Min {
		return cty.NilVal, errf(field.Name, OutOfRange, "value %v is below minimum %v", f, *sel.Min)
	}
	if sel.Max != nil && f > *sel.Max {
		return cty.NilVal, errf(field.Name, OutOfRange, "value %v is above maximum %v", f, *sel.Max)
	}

	if sel.Step != nil && !sel.InStep(f) {
		base := 0.0
		if sel.Min != nil {
			base = *sel.Min
		}
		return cty.NilVal, errf(field.Name, InvalidStep, "value %v is not a multiple of step %v from %v", f, *sel.Step, base)
	}

	return cty.NumberFloatVal(f), nil
}

func coerceSelect(field *config.FieldSpec, v any) (cty.Value, *Error) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case cty.Value:
		if t.IsNull() || t.Type() != cty.String {
			return cty.NilVal, errf(field.Name, InvalidType, "select value must be a string")
		}
		s = t.AsString()
	default:
		return cty.NilVal, errf(field.Name, InvalidType, "value of type %T is not a string", v)
	}

	for _, opt := range field.Selector.Options {
		if s == opt {
			return cty.StringVal(s), nil
		}
	}
	return cty.NilVal, errf(field.Name, InvalidOption, "value %q is not one of [%s]", s, strings.Join(field.Selector.Options, ", "))
}

// stringify renders scalar inputs as strings, mirroring the behavior of the
// lenient string coercion the manifests were written against.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case cty.Value:
		if t.IsNull() {
			return "", false
		}
		switch t.Type() {
		case cty.String:
			return t.AsString(), true
		case cty.Bool:
			return strconv.FormatBool(t.True()), true
		case cty.Number:
			f, _ := t.AsBigFloat().Float64()
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return "", false
	default:
		return "", false
	}
}

// floatify parses numeric inputs, including numeric strings, into a float64.
func floatify(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case cty.Value:
		if t.IsNull() {
			return 0, false
		}
		switch t.Type() {
		case cty.Number:
			f, _ := t.AsBigFloat().Float64()
			return f, true
		case cty.String:
			return floatify(t.AsString())
		}
		return 0, false
	default:
		return 0, false
	}
}

// Interface converts a validated value back to a plain Go value, for logging
// and for callers that introspect results without cty in hand.
func Interface(val cty.Value) any {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}
	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	case cty.Bool:
		return val.True()
	default:
		return fmt.Sprintf("%#v", val)
	}
}
