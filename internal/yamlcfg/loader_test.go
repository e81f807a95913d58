package yamlcfg

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

const weightYAML = `
log_weight:
  name: Log Weight
  description: Record a weight measurement.
  handler: OnLogWeight
  fields:
    weight:
      name: Weight
      required: true
      selector:
        number:
          min: 0
          max: 10000
          step: 0.1
    unit:
      default: g
      selector:
        select:
          options: [g, kg, oz, lb]
    notes:
      default: ""
      selector:
        text:
          multiline: true
`

func TestLoad_FullServiceDefinition(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", weightYAML)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Services, 1)

	spec := model.Services["log_weight"]
	require.NotNil(t, spec)
	assert.Equal(t, "Log Weight", spec.DisplayName)
	assert.Equal(t, "OnLogWeight", spec.Handler)
	assert.Equal(t, []string{"weight", "unit", "notes"}, spec.FieldOrder)

	weight := spec.Fields["weight"]
	assert.True(t, weight.Required)
	assert.Equal(t, config.SelectorNumber, weight.Selector.Kind)
	require.NotNil(t, weight.Selector.Max)
	assert.Equal(t, 10000.0, *weight.Selector.Max)

	unit := spec.Fields["unit"]
	require.NotNil(t, unit.Default)
	assert.Equal(t, cty.StringVal("g"), *unit.Default)
	assert.Equal(t, []string{"g", "kg", "oz", "lb"}, unit.Selector.Options)

	notes := spec.Fields["notes"]
	assert.True(t, notes.Selector.Multiline)
	require.NotNil(t, notes.Default)
	assert.Equal(t, cty.StringVal(""), *notes.Default)
}

func TestLoad_NullDefaultMeansNoDefault(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", `
svc:
  handler: OnSvc
  fields:
    explicit_null:
      default: null
      selector:
        text: {}
    absent:
      selector:
        text: {}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	spec := model.Services["svc"]
	require.NotNil(t, spec)
	assert.Nil(t, spec.Fields["explicit_null"].Default)
	assert.Nil(t, spec.Fields["absent"].Default)
}

func TestLoad_BooleanSelectorAliases(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", `
svc_a:
  handler: OnA
  fields:
    flag:
      selector:
        boolean: {}
svc_b:
  handler: OnB
  fields:
    flag:
      selector:
        bool: {}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Services, 2)
	assert.Equal(t, config.SelectorBool, model.Services["svc_a"].Fields["flag"].Selector.Kind)
	assert.Equal(t, config.SelectorBool, model.Services["svc_b"].Fields["flag"].Selector.Kind)
}

func TestLoad_InvalidServiceDroppedOthersSurvive(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", `
broken:
  handler: OnBroken
  fields:
    count:
      required: true
      default: 5
      selector:
        number: {}
fine:
  handler: OnFine
  fields:
    name:
      selector:
        text: {}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.NotContains(t, model.Services, "broken")
	assert.Contains(t, model.Services, "fine")
}

func TestLoad_UnknownSelectorKindDropsService(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", `
svc:
  handler: OnSvc
  fields:
    when:
      selector:
        datetime: {}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, model.Services)
}

func TestLoad_ParseErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", "log_weight: [unclosed")

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
}

func TestLoad_TopLevelMustBeMapping(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", "- just\n- a\n- list\n")

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
}

func TestLoad_OrderPreserved(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "services.yaml", `
log_feeding:
  handler: OnLogFeeding
log_shedding:
  handler: OnLogShedding
log_weight:
  handler: OnLogWeight
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"log_feeding", "log_shedding", "log_weight"}, model.Order)
}
