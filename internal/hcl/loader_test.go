package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/habitatgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoad_FullServiceDefinition(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "weight.hcl", `
		service "log_weight" {
			display_name = "Log Weight"
			description  = "Record a weight measurement."
			handler      = "OnLogWeight"

			field "weight" {
				display_name = "Weight"
				required     = true
				selector {
					number {
						min  = 0
						max  = 10000
						step = 0.1
					}
				}
			}

			field "unit" {
				default = "g"
				selector {
					select {
						options = ["g", "kg", "oz", "lb"]
					}
				}
			}

			field "notes" {
				default = ""
				selector {
					text {
						multiline = true
					}
				}
			}
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Services, 1)

	spec := model.Services["log_weight"]
	require.NotNil(t, spec)
	assert.Equal(t, "Log Weight", spec.DisplayName)
	assert.Equal(t, "OnLogWeight", spec.Handler)
	assert.Equal(t, []string{"weight", "unit", "notes"}, spec.FieldOrder)

	weight := spec.Fields["weight"]
	require.NotNil(t, weight)
	assert.True(t, weight.Required)
	assert.Nil(t, weight.Default)
	assert.Equal(t, config.SelectorNumber, weight.Selector.Kind)
	require.NotNil(t, weight.Selector.Step)
	assert.Equal(t, 0.1, *weight.Selector.Step)

	unit := spec.Fields["unit"]
	require.NotNil(t, unit)
	assert.False(t, unit.Required)
	require.NotNil(t, unit.Default)
	assert.Equal(t, cty.StringVal("g"), *unit.Default)
	assert.Equal(t, []string{"g", "kg", "oz", "lb"}, unit.Selector.Options)

	notes := spec.Fields["notes"]
	require.NotNil(t, notes)
	assert.Equal(t, config.SelectorText, notes.Selector.Kind)
	assert.True(t, notes.Selector.Multiline)
}

func TestLoad_InvalidServiceDroppedOthersSurvive(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "mixed.hcl", `
		service "broken" {
			handler = "OnBroken"
			field "count" {
				required = true
				default  = 5
				selector {
					number {}
				}
			}
		}

		service "fine" {
			handler = "OnFine"
			field "name" {
				selector {
					text {}
				}
			}
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.NotContains(t, model.Services, "broken")
	assert.Contains(t, model.Services, "fine")
}

func TestLoad_DuplicateServiceIDKeepsFirst(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.hcl", `
		service "svc" {
			display_name = "First"
			handler      = "OnFirst"
		}
	`)
	writeManifest(t, dir, "b.hcl", `
		service "svc" {
			display_name = "Second"
			handler      = "OnSecond"
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Services, 1)
	assert.Equal(t, "First", model.Services["svc"].DisplayName)
}

func TestLoad_MissingSelectorDropsService(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "bad.hcl", `
		service "svc" {
			handler = "OnSvc"
			field "name" {}
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, model.Services)
}

func TestLoad_AmbiguousSelectorDropsService(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "bad.hcl", `
		service "svc" {
			handler = "OnSvc"
			field "name" {
				selector {
					text {}
					bool {}
				}
			}
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, model.Services)
}

func TestLoad_ParseErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "broken.hcl", `service "svc" {`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
}

func TestLoad_OrderAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "1_feeding.hcl", `
		service "log_feeding" {
			handler = "OnLogFeeding"
		}
	`)
	writeManifest(t, dir, "2_weight.hcl", `
		service "log_weight" {
			handler = "OnLogWeight"
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"log_feeding", "log_weight"}, model.Order)
}
