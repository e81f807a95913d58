// Package schema declares the HCL block structure of service manifest files.
// These structs are the raw decode targets; the hcl package translates them
// into the format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// TextSelector constrains a field to string values. Multiline is a
// presentation hint for form generators.
type TextSelector struct {
	Multiline bool `hcl:"multiline,optional"`
}

// BoolSelector constrains a field to boolean values.
type BoolSelector struct{}

// NumberSelector constrains a field to numeric values within an optional
// range, optionally snapped to a step.
type NumberSelector struct {
	Min  *float64 `hcl:"min,optional"`
	Max  *float64 `hcl:"max,optional"`
	Step *float64 `hcl:"step,optional"`
}

// SelectSelector constrains a field to one of a closed list of options.
type SelectSelector struct {
	Options []string `hcl:"options"`
}

// SelectorBlock holds exactly one of the selector variants. Declaring zero or
// more than one is a manifest defect caught during translation.
type SelectorBlock struct {
	Text   *TextSelector   `hcl:"text,block"`
	Bool   *BoolSelector   `hcl:"bool,block"`
	Number *NumberSelector `hcl:"number,block"`
	Select *SelectSelector `hcl:"select,block"`
}

// Field represents a `field` block inside a service definition.
type Field struct {
	Name        string         `hcl:"name,label"`
	DisplayName string         `hcl:"display_name,optional"`
	Description string         `hcl:"description,optional"`
	Required    bool           `hcl:"required,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Selector    *SelectorBlock `hcl:"selector,block"`
}

// Service represents a top-level `service` block in a manifest file.
type Service struct {
	ID          string   `hcl:"id,label"`
	DisplayName string   `hcl:"display_name,optional"`
	Description string   `hcl:"description,optional"`
	Handler     string   `hcl:"handler"`
	Fields      []*Field `hcl:"field,block"`
}

// File represents the top-level structure of one manifest file.
type File struct {
	Services []*Service `hcl:"service,block"`
	Remain   hcl.Body   `hcl:",remain"`
}
