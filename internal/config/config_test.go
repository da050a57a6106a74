package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchfx/glitch"
)

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, glitch.DefaultConfig(), f.Effect())
	assert.Equal(t, glitch.TimingTimer, f.Kind())
	assert.Len(t, f.Options(), 1)
}

func TestParseFull(t *testing.T) {
	src := `
enabled: false
initial_delay_ms: 1500
glitch_duration_ms: 300
idle_interval_ms: 1500
resample_ms: {min: 20, max: 60}
timing: phase
seed: 77
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	cfg := f.Effect()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.GlitchDuration)
	assert.Equal(t, 1500*time.Millisecond, cfg.IdleInterval)
	assert.Equal(t, 20*time.Millisecond, cfg.ResampleMin)
	assert.Equal(t, 60*time.Millisecond, cfg.ResampleMax)
	assert.Equal(t, glitch.TimingPhase, f.Kind())
	assert.Len(t, f.Options(), 2)
}

func TestParseZeroDurationIsKept(t *testing.T) {
	f, err := Parse([]byte("glitch_duration_ms: 0\nidle_interval_ms: -300\n"))
	require.NoError(t, err)

	cfg := f.Effect()
	assert.Zero(t, cfg.GlitchDuration)
	assert.Equal(t, -300*time.Millisecond, cfg.IdleInterval)
	assert.Zero(t, cfg.Normalize().IdleInterval)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("timing: animate\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("enabled: [\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := glitch.DefaultConfig()
	cfg.InitialDelay = 250 * time.Millisecond
	path := filepath.Join(t.TempDir(), "glitch.yaml")

	require.NoError(t, Save(path, FromEffect(cfg, glitch.TimingPhase, 9)))
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, f.Effect())
	assert.Equal(t, glitch.TimingPhase, f.Kind())
	assert.Equal(t, uint64(9), f.Seed)
}

func TestNilFile(t *testing.T) {
	var f *File
	assert.Equal(t, glitch.DefaultConfig(), f.Effect())
	assert.Equal(t, glitch.TimingTimer, f.Kind())
	assert.Len(t, f.Options(), 1)
}
