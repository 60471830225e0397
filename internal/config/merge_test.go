package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/quantify/internal/config"
)

// newDefaultTarget returns a Config with known non-zero defaults so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		Version: "1.0.0",
		Logging: config.LoggingConfig{
			Level: "info",
		},
		Output: config.OutputConfig{
			Format:  "text",
			Grouped: true,
		},
		Units: []config.CustomUnit{
			{Symbol: "nmi", Name: "nautical mile", Base: "m", Factor: 1852},
		},
	}
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  format: json
  html: true
`)

	err := config.ShallowMergeYAML(target, overlay)
	require.NoError(t, err)

	// Output should be replaced.
	assert.Equal(t, "json", target.Output.Format)
	assert.True(t, target.Output.HTML)
	assert.False(t, target.Output.Grouped, "section replaced wholesale")

	// Other sections should be unchanged.
	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, "1.0.0", target.Version)
	require.Len(t, target.Units, 1)
	assert.Equal(t, "nmi", target.Units[0].Symbol)
}

func TestShallowMergeYAML_MultipleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
version: 1.2.0
logging:
  level: debug
  file: /tmp/quantify.log
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "1.2.0", target.Version)
	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "/tmp/quantify.log", target.Logging.File)
	assert.Equal(t, "text", target.Output.Format)
}

func TestShallowMergeYAML_OverrideUnits(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
units:
  - symbol: ft
    name: foot
    base: m
    factor: 0.3048
  - symbol: rankine
    name: degree Rankine
    base: K
    factor: 0.5555555555555556
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	require.Len(t, target.Units, 2, "overlay list replaces, not appends")
	assert.Equal(t, "ft", target.Units[0].Symbol)
	assert.InDelta(t, 0.3048, target.Units[0].Factor, 1e-12)
	assert.Equal(t, "K", target.Units[1].Base)
}

func TestShallowMergeYAML_EmptyOverlayFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_CommentOnlyFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "# nothing to see here\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_CorruptedYAMLReturnsError(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "output: [unclosed\n")

	err := config.ShallowMergeYAML(target, overlay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing overlay YAML")
}

func TestShallowMergeYAML_MissingFileReturnsError(t *testing.T) {
	target := newDefaultTarget()

	err := config.ShallowMergeYAML(target, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading overlay file")
}

func TestShallowMergeYAML_NilTarget(t *testing.T) {
	overlay := writeOverlay(t, "version: 1.0.0\n")

	err := config.ShallowMergeYAML(nil, overlay)
	require.Error(t, err)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
output:
  format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "json", target.Output.Format)
	assert.Equal(t, "info", target.Logging.Level)
}

func TestShallowMergeYAML_SectionTypeMismatch(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
units:
  symbol: ft
`)

	err := config.ShallowMergeYAML(target, overlay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `applying overlay section "units"`)
}
