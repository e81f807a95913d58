package hcl

import (
	"context"
	"fmt"

	"github.com/vk/habitatgo/internal/config"
	"github.com/vk/habitatgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translateService converts one decoded HCL service block into the agnostic
// model. Structural defects (missing or ambiguous selector blocks, defaults
// that do not evaluate) are errors; semantic defects are left for
// config.ValidateServiceSpec.
func (l *Loader) translateService(ctx context.Context, s *schema.Service) (*config.ServiceSpec, error) {
	spec := &config.ServiceSpec{
		ID:          s.ID,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Handler:     s.Handler,
		Fields:      make(map[string]*config.FieldSpec, len(s.Fields)),
	}

	for _, f := range s.Fields {
		fieldSpec, err := translateField(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		spec.Fields[f.Name] = fieldSpec
		spec.FieldOrder = append(spec.FieldOrder, f.Name)
	}

	return spec, nil
}

func translateField(_ context.Context, f *schema.Field) (*config.FieldSpec, error) {
	selector, err := translateSelector(f.Selector)
	if err != nil {
		return nil, err
	}

	var defaultVal *cty.Value
	if f.Default != nil {
		val, diags := f.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default expression: %w", diags)
		}
		// A null default is the same as no default at all.
		if !val.IsNull() {
			defaultVal = &val
		}
	}

	return &config.FieldSpec{
		Name:        f.Name,
		DisplayName: f.DisplayName,
		Description: f.Description,
		Required:    f.Required,
		Default:     defaultVal,
		Selector:    selector,
	}, nil
}

// translateSelector maps the one-of selector block onto the tagged variant.
func translateSelector(block *schema.SelectorBlock) (*config.Selector, error) {
	if block == nil {
		return nil, fmt.Errorf("missing selector block")
	}

	var sel *config.Selector
	count := 0

	if block.Text != nil {
		sel = &config.Selector{Kind: config.SelectorText, Multiline: block.Text.Multiline}
		count++
	}
	if block.Bool != nil {
		sel = &config.Selector{Kind: config.SelectorBool}
		count++
	}
	if block.Number != nil {
		sel = &config.Selector{
			Kind: config.SelectorNumber,
			Min:  block.Number.Min,
			Max:  block.Number.Max,
			Step: block.Number.Step,
		}
		count++
	}
	if block.Select != nil {
		sel = &config.Selector{Kind: config.SelectorSelect, Options: block.Select.Options}
		count++
	}

	if count != 1 {
		return nil, fmt.Errorf("selector block must declare exactly one of text, bool, number, select; got %d", count)
	}
	return sel, nil
}
