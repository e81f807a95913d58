package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoActionPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_ListAction(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-list", "-manifests", "/tmp/manifests"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.True(t, cfg.ListServices)
	assert.Equal(t, "/tmp/manifests", cfg.ManifestPath)
	assert.Equal(t, "hcl", cfg.Format)
}

func TestParse_CallWithArgs(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{
		"-call", "log_weight",
		"-arg", "weight=150",
		"-arg", "unit=g",
	}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "log_weight", cfg.CallService)
	assert.Equal(t, map[string]string{"weight": "150", "unit": "g"}, cfg.CallArgs)
}

func TestParse_MalformedArg(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-call", "x", "-arg", "noequals"}, &out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-list", "-log-level", "loud"}, &out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-list", "-format", "toml"}, &out)
	require.Error(t, err)
	assert.IsType(t, &ExitError{}, err)
}

func TestParse_ListAndCallAreExclusive(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-list", "-call", "log_weight"}, &out)
	require.Error(t, err)
}
