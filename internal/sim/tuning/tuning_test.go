package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hillsim.ai/internal/sim/world"
)

func TestParseEmptyUsesDefaults(t *testing.T) {
	got, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestParseOverrides(t *testing.T) {
	got, err := Parse([]byte(`
max_time_step: 0.1
fall_damage_per_level: 0
cave_in_drop_chance: 0
experience:
  per_work: 30
max_units: 12
`))
	require.NoError(t, err)
	assert.Equal(t, 0.1, got.MaxTimeStep)
	assert.Equal(t, 0, got.FallDamagePerLevel)
	assert.Equal(t, 0.0, got.CaveInDropChance)
	assert.Equal(t, 30, got.Experience.PerWork)
	assert.Equal(t, 1, got.Experience.PerStep)
	assert.Equal(t, 12, got.MaxUnits)
	assert.Equal(t, 5, got.MaxFactions)
	assert.Equal(t, 180.0, got.RestInterval)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := []string{
		"max_time_step: -1\n",
		"cave_in_drop_chance: 1.5\n",
		"max_units: 2.5\n",
		"unknown_field: 1\n",
		"experience:\n  per_level: 0\n",
		"- not\n- a\n- map\n",
	}
	for _, c := range cases {
		_, err := Parse([]byte(c))
		assert.Error(t, err, "expected schema error for %q", c)
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(p, []byte("rest_interval: 60\n"), 0o644))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 60.0, got.RestInterval)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultsMatchWorldDefaults(t *testing.T) {
	assert.Equal(t, world.DefaultConfig(), Defaults().WorldConfig())

	got, err := Parse([]byte("path_max_nodes: 500\nexperience:\n  per_level: 25\n"))
	require.NoError(t, err)
	cfg := got.WorldConfig()
	assert.Equal(t, 500, cfg.PathMaxNodes)
	assert.Equal(t, 25, cfg.ExpPerLevel)
}
