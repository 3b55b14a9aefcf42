package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

func TestSamplingIntervals(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "alpha", sampleCSV)
	writeGame(t, dir, "beta", sampleCSV)

	st := New(dir, WithLogger(quietLogger()))
	table, err := st.SamplingIntervals([]string{"beta"})
	require.NoError(t, err)

	n := len(sensors.Codes())
	assert.Equal(t, 2*n, table.Len())
	assert.Len(t, table.Sensors, table.Len())
	assert.Len(t, table.Games, table.Len())
	for _, g := range table.Games {
		assert.Equal(t, "beta", g)
	}
	assert.Equal(t, "Accelerometer", table.Sensors[0])
	assert.Equal(t, "Rotation sensor", table.Sensors[table.Len()-1])

	groups := table.BySensor()
	assert.Len(t, groups, n)
	assert.InDeltaSlice(t, []float64{0.02, 0.03}, groups["Gyroscope"], 1e-12)
}

func TestSamplingIntervals_AllGames(t *testing.T) {
	dir := t.TempDir()
	writeGame(t, dir, "alpha", sampleCSV)
	writeGame(t, dir, "beta", sampleCSV)

	st := New(dir, WithLogger(quietLogger()))
	table, err := st.SamplingIntervals(nil)
	require.NoError(t, err)

	assert.Equal(t, 2*2*len(sensors.Codes()), table.Len())
	assert.Equal(t, "alpha", table.Games[0])
	assert.Equal(t, "beta", table.Games[table.Len()-1])
}

func TestSamplingIntervals_MissingSensor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gammaaccm.csv", sampleCSV)

	st := New(dir, WithLogger(quietLogger()))
	_, err := st.SamplingIntervals([]string{"gamma"})
	assert.Error(t, err)
}

func TestSamplingTable_Append(t *testing.T) {
	var table SamplingTable
	table.Append("g", "Gyroscope", []float64{0.1, 0.2})
	table.Append("h", "Magnetometer", nil)
	table.Append("h", "Magnetometer", []float64{0.3})

	assert.Equal(t, []float64{0.1, 0.2, 0.3}, table.Intervals)
	assert.Equal(t, []string{"Gyroscope", "Gyroscope", "Magnetometer"}, table.Sensors)
	assert.Equal(t, []string{"g", "g", "h"}, table.Games)
}
