package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// stepTolerance absorbs floating-point noise when checking that a value sits
// on a step boundary.
const stepTolerance = 1e-6

// SelectorKind identifies which variant of a Selector is in use. The set is
// closed: every field in a manifest must declare exactly one of these.
type SelectorKind int

const (
	SelectorText SelectorKind = iota
	SelectorBool
	SelectorNumber
	SelectorSelect
)

// String returns the manifest-facing name of the kind.
func (k SelectorKind) String() string {
	switch k {
	case SelectorText:
		return "text"
	case SelectorBool:
		return "bool"
	case SelectorNumber:
		return "number"
	case SelectorSelect:
		return "select"
	default:
		return fmt.Sprintf("SelectorKind(%d)", int(k))
	}
}

// Selector is the tagged variant describing a field's type and constraints.
// Only the constraint fields matching Kind are meaningful; the others stay at
// their zero values.
type Selector struct {
	Kind SelectorKind

	// Text constraints. Multiline affects presentation only, never validation.
	Multiline bool

	// Number constraints. A nil bound means unbounded on that side. Step, when
	// set, must be positive; values are then constrained to min + k*step.
	Min  *float64
	Max  *float64
	Step *float64

	// Select constraints: the closed set of accepted values, in declaration
	// order.
	Options []string
}

// CtyType returns the cty type a validated value of this selector carries.
func (s *Selector) CtyType() cty.Type {
	switch s.Kind {
	case SelectorBool:
		return cty.Bool
	case SelectorNumber:
		return cty.Number
	default:
		// Text and select values are both strings on the wire.
		return cty.String
	}
}

// InStep reports whether v sits on the step grid, anchored at min when a
// minimum is set and at zero otherwise. A selector without a step accepts
// any value.
func (s *Selector) InStep(v float64) bool {
	if s.Step == nil {
		return true
	}
	base := 0.0
	if s.Min != nil {
		base = *s.Min
	}
	offset := v - base
	k := math.Round(offset / *s.Step)
	return math.Abs(offset-k**s.Step) <= stepTolerance
}

// Describe returns a short human-readable summary of the selector, used by
// the introspection output.
func (s *Selector) Describe() string {
	switch s.Kind {
	case SelectorText:
		if s.Multiline {
			return "text (multiline)"
		}
		return "text"
	case SelectorBool:
		return "bool"
	case SelectorNumber:
		var parts []string
		if s.Min != nil {
			parts = append(parts, fmt.Sprintf("min %v", *s.Min))
		}
		if s.Max != nil {
			parts = append(parts, fmt.Sprintf("max %v", *s.Max))
		}
		if s.Step != nil {
			parts = append(parts, fmt.Sprintf("step %v", *s.Step))
		}
		if len(parts) == 0 {
			return "number"
		}
		return "number (" + strings.Join(parts, ", ") + ")"
	case SelectorSelect:
		return "select [" + strings.Join(s.Options, ", ") + "]"
	default:
		return s.Kind.String()
	}
}
