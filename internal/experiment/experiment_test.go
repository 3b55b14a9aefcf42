package experiment

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/dataset"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/storage"
)

func writeRecording(t *testing.T, dir, game, sensor string, n int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("time,X_value,Y_value,Z_value\n")
	for i := 0; i < n; i++ {
		f := float64(i)
		fmt.Fprintf(&b, "%g,%g,%g,%g\n", f*0.02, math.Sin(0.2*f), math.Cos(0.15*f), math.Sin(0.05*f)+0.1*math.Cos(f))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, game+sensor+".csv"), []byte(b.String()), 0644))
}

func newStore(dir string) *dataset.Store {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return dataset.New(dir, dataset.WithLogger(l))
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Game: "race", Sensor: "accm", Window: 10, Components: 3}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty game", func(c *Config) { c.Game = "" }},
		{"unknown sensor", func(c *Config) { c.Sensor = "xxxx" }},
		{"unknown axis", func(c *Config) { c.Axis = dataset.Axis(5) }},
		{"zero window", func(c *Config) { c.Window = 0 }},
		{"zero components", func(c *Config) { c.Components = 0 }},
		{"components above window", func(c *Config) { c.Components = 11 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "race", "gyrm", 200)

	runsDir := t.TempDir()
	r := New(newStore(dir)).WithRuns(storage.New(runsDir))

	out, err := r.Run(context.Background(), Config{Game: "race", Sensor: "gyrm", Axis: dataset.AxisY, Window: 20, Components: 3, Correlation: true})
	require.NoError(t, err)

	assert.Equal(t, 200, out.Samples)
	rows, cols := out.Result.Projection.Dims()
	assert.Equal(t, 180, rows)
	assert.Equal(t, 3, cols)
	assert.NotNil(t, out.Result.Correlation)
	require.NotEmpty(t, out.RunID)

	meta, err := storage.New(runsDir).Load(out.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Y", meta.Axis)
	assert.Equal(t, 20, meta.Window)
}

func TestRun_WindowTooLarge(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "race", "gyrm", 10)

	_, err := New(newStore(dir)).Run(context.Background(), Config{Game: "race", Sensor: "gyrm", Window: 10, Components: 2})
	assert.ErrorIs(t, err, embedding.ErrInvalidDimension)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newStore(t.TempDir())).Run(ctx, Config{Game: "race", Sensor: "gyrm", Window: 5, Components: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "race", "accm", 120)
	writeRecording(t, dir, "race", "gyrm", 120)

	r := New(newStore(dir))
	cfgs := Matrix("race", 12, 2)
	outcomes, err := r.RunBatch(context.Background(), cfgs, 4)
	require.NoError(t, err)
	require.Len(t, outcomes, len(cfgs))

	var ok, failed int
	for i, out := range outcomes {
		assert.Equal(t, cfgs[i], out.Config)
		if out.Err != nil {
			assert.ErrorIs(t, out.Err, os.ErrNotExist)
			failed++
			continue
		}
		assert.Contains(t, []string{"accm", "gyrm"}, out.Config.Sensor)
		ok++
	}
	assert.Equal(t, 6, ok)
	assert.Equal(t, len(cfgs)-6, failed)
	assert.Equal(t, 2, r.rec.size())
}

func TestMatrix(t *testing.T) {
	cfgs := Matrix("race", 30, 3)
	assert.Len(t, cfgs, 18)
	assert.Equal(t, Config{Game: "race", Sensor: "accm", Axis: dataset.AxisX, Window: 30, Components: 3}, cfgs[0])
	assert.Equal(t, dataset.AxisZ, cfgs[2].Axis)
	assert.Equal(t, "gyrm", cfgs[3].Sensor)
}
