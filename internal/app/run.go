package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/habitatgo/internal/config"
	"github.com/vk/habitatgo/internal/ctxlog"
	"github.com/vk/habitatgo/internal/validator"
)

// Run executes the action selected by the configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	switch {
	case appConfig.ListServices:
		return a.runList()
	case appConfig.CallService != "":
		return a.runCall(ctx, appConfig)
	default:
		a.logger.Warn("No action selected, nothing to do.")
		return nil
	}
}

// runList prints every bound service and its fields in registration order.
func (a *App) runList() error {
	for _, spec := range a.registry.List() {
		fmt.Fprintf(a.outW, "%s  (%s)\n", spec.ID, spec.DisplayName)
		if spec.Description != "" {
			fmt.Fprintf(a.outW, "    %s\n", spec.Description)
		}
		for _, name := range spec.FieldOrder {
			field := spec.Fields[name]
			requirement := "optional"
			if field.Required {
				requirement = "required"
			}
			fmt.Fprintf(a.outW, "    %-12s %s, %s", name, field.Selector.Describe(), requirement)
			if field.Default != nil {
				fmt.Fprintf(a.outW, ", default %v", formatDefault(field))
			}
			fmt.Fprintln(a.outW)
		}
	}
	return nil
}

// runCall dispatches one service call built from the CLI arguments. Argument
// values arrive as strings; the validator's coercion layer takes it from there.
func (a *App) runCall(ctx context.Context, appConfig *Config) error {
	rawArgs := make(map[string]any, len(appConfig.CallArgs))
	for k, v := range appConfig.CallArgs {
		rawArgs[k] = v
	}

	result, err := a.dispatcher.Call(ctx, appConfig.CallService, rawArgs)
	if err != nil {
		return fmt.Errorf("call failed: %w", err)
	}

	if result == nil {
		fmt.Fprintln(a.outW, "ok")
		return nil
	}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode call result: %w", err)
	}
	fmt.Fprintln(a.outW, string(encoded))
	return nil
}

func formatDefault(field *config.FieldSpec) any {
	return validator.Interface(*field.Default)
}
