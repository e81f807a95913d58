// Package yamlcfg implements the YAML-backed manifest loader. Service
// catalogs of this shape originate in services.yaml-style documents: a
// top-level mapping from service id to its description, handler, and fields.
// The loader walks yaml nodes directly so that declaration order survives
// into the model.
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/habitatgo/internal/config"
	"github.com/vk/habitatgo/internal/ctxlog"
	"github.com/vk/habitatgo/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads .yaml and .yml manifest files from the given paths. A document
// that fails to parse is fatal; an individual service definition that fails
// schema validation is dropped with a warning.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := config.NewModel()

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".yaml", ".yml")
		if err != nil {
			return nil, fmt.Errorf("error walking manifest path %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered YAML manifest files.", "count", len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest file %s: %w", file, err)
		}

		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to parse manifest file %s: %w", file, err)
		}
		if root.Kind == 0 || len(root.Content) == 0 {
			continue // empty document
		}

		doc := root.Content[0]
		if doc.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("manifest file %s: top level must be a mapping of service ids", file)
		}

		for i := 0; i+1 < len(doc.Content); i += 2 {
			id := doc.Content[i].Value
			spec, err := translateService(id, doc.Content[i+1])
			if err != nil {
				logger.Warn("Dropping invalid service definition.", "file", file, "service", id, "error", err)
				continue
			}
			if schemaErr := config.ValidateServiceSpec(spec); schemaErr != nil {
				logger.Warn("Dropping invalid service definition.", "file", file, "service", id, "error", schemaErr)
				continue
			}
			if !model.Add(spec) {
				logger.Warn("Dropping duplicate service definition.", "file", file,
					"error", &config.SchemaError{Service: id, Reason: config.DuplicateServiceID, Detail: "id already defined in an earlier manifest"})
			}
		}
	}

	logger.Debug("YAML loading complete.", "services", len(model.Services))
	return model, nil
}

// serviceDoc mirrors the per-service mapping, minus the ordered fields block
// which is walked by hand.
type serviceDoc struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Handler     string    `yaml:"handler"`
	Fields      yaml.Node `yaml:"fields"`
}

// fieldDoc mirrors one field definition. Default is a value node, not a
// pointer: yaml.v3 only captures raw nodes into fields of type yaml.Node
// itself, so absence is detected through the zero Kind instead of nil.
type fieldDoc struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Required    bool                 `yaml:"required"`
	Default     yaml.Node            `yaml:"default"`
	Selector    map[string]yaml.Node `yaml:"selector"`
}

func translateService(id string, node *yaml.Node) (*config.ServiceSpec, error) {
	var doc serviceDoc
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("service %q: %w", id, err)
	}

	spec := &config.ServiceSpec{
		ID:          id,
		DisplayName: doc.Name,
		Description: doc.Description,
		Handler:     doc.Handler,
		Fields:      make(map[string]*config.FieldSpec),
	}

	if doc.Fields.Kind == 0 {
		return spec, nil
	}
	if doc.Fields.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("service %q: fields must be a mapping", id)
	}

	for i := 0; i+1 < len(doc.Fields.Content); i += 2 {
		name := doc.Fields.Content[i].Value
		fieldSpec, err := translateField(name, doc.Fields.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("service %q, field %q: %w", id, name, err)
		}
		spec.Fields[name] = fieldSpec
		spec.FieldOrder = append(spec.FieldOrder, name)
	}

	return spec, nil
}

func translateField(name string, node *yaml.Node) (*config.FieldSpec, error) {
	var doc fieldDoc
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}

	selector, err := translateSelector(doc.Selector)
	if err != nil {
		return nil, err
	}

	var defaultVal *cty.Value
	if doc.Default.Kind != 0 {
		var raw any
		if err := doc.Default.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid default: %w", err)
		}
		if raw != nil {
			val, err := goToCty(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid default: %w", err)
			}
			defaultVal = &val
		}
	}

	return &config.FieldSpec{
		Name:        name,
		DisplayName: doc.Name,
		Description: doc.Description,
		Required:    doc.Required,
		Default:     defaultVal,
		Selector:    selector,
	}, nil
}

func translateSelector(block map[string]yaml.Node) (*config.Selector, error) {
	if len(block) == 0 {
		return nil, fmt.Errorf("missing selector")
	}
	if len(block) > 1 {
		return nil, fmt.Errorf("selector must declare exactly one kind, got %d", len(block))
	}

	for kind, node := range block {
		switch kind {
		case "text":
			var sel struct {
				Multiline bool `yaml:"multiline"`
			}
			if err := node.Decode(&sel); err != nil {
				return nil, err
			}
			return &config.Selector{Kind: config.SelectorText, Multiline: sel.Multiline}, nil
		case "boolean", "bool":
			return &config.Selector{Kind: config.SelectorBool}, nil
		case "number":
			var sel struct {
				Min  *float64 `yaml:"min"`
				Max  *float64 `yaml:"max"`
				Step *float64 `yaml:"step"`
			}
			if err := node.Decode(&sel); err != nil {
				return nil, err
			}
			return &config.Selector{Kind: config.SelectorNumber, Min: sel.Min, Max: sel.Max, Step: sel.Step}, nil
		case "select":
			var sel struct {
				Options []string `yaml:"options"`
			}
			if err := node.Decode(&sel); err != nil {
				return nil, err
			}
			return &config.Selector{Kind: config.SelectorSelect, Options: sel.Options}, nil
		default:
			return nil, fmt.Errorf("unknown selector kind %q", kind)
		}
	}
	return nil, fmt.Errorf("missing selector")
}

// goToCty lifts a decoded YAML scalar into its cty equivalent.
func goToCty(v any) (cty.Value, error) {
	switch t := v.(type) {
	case bool:
		return cty.BoolVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case float64:
		return cty.NumberFloatVal(t), nil
	case string:
		return cty.StringVal(t), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported default value type %T", v)
	}
}
