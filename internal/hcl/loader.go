package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/habitatgo/internal/config"
	"github.com/vk/habitatgo/internal/ctxlog"
	"github.com/vk/habitatgo/internal/fsutil"
	"github.com/vk/habitatgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the HCL manifest loading process. A parse failure in a
// file is fatal to the whole load; a schema defect in one service definition
// drops only that definition.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error walking manifest path %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered HCL manifest files.", "count", len(files))

	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest file %s: %w", file, diags)
		}

		for _, svc := range root.Services {
			spec, err := l.translateService(ctx, svc)
			if err != nil {
				logger.Warn("Dropping invalid service definition.", "file", file, "service", svc.ID, "error", err)
				continue
			}
			if schemaErr := config.ValidateServiceSpec(spec); schemaErr != nil {
				logger.Warn("Dropping invalid service definition.", "file", file, "service", svc.ID, "error", schemaErr)
				continue
			}
			if !model.Add(spec) {
				logger.Warn("Dropping duplicate service definition.", "file", file,
					"error", &config.SchemaError{Service: spec.ID, Reason: config.DuplicateServiceID, Detail: "id already defined in an earlier manifest"})
			}
		}
	}

	logger.Debug("HCL loading complete.", "services", len(model.Services))
	return model, nil
}
