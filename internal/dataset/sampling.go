package dataset

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

// SamplingTable holds the time step between consecutive samples of every
// loaded recording. Columns are parallel slices; Sensors holds display names.
type SamplingTable struct {
	Intervals []float64
	Sensors   []string
	Games     []string
}

// Len returns the number of rows.
func (t *SamplingTable) Len() int {
	return len(t.Intervals)
}

// Append adds the intervals of one recording.
func (t *SamplingTable) Append(game, sensorName string, intervals []float64) {
	n := len(intervals)
	t.Intervals = append(slices.Grow(t.Intervals, n), intervals...)
	t.Sensors = slices.Grow(t.Sensors, n)
	t.Games = slices.Grow(t.Games, n)
	for i := 0; i < n; i++ {
		t.Sensors = append(t.Sensors, sensorName)
		t.Games = append(t.Games, game)
	}
}

// BySensor groups intervals by sensor display name.
func (t *SamplingTable) BySensor() map[string][]float64 {
	out := make(map[string][]float64)
	for i, name := range t.Sensors {
		out[name] = append(out[name], t.Intervals[i])
	}
	return out
}

// SamplingIntervals loads every sensor of the given games and collects
// their sampling intervals. An empty games list processes every game.
func (s *Store) SamplingIntervals(games []string) (*SamplingTable, error) {
	if len(games) == 0 {
		s.log.Info("no games entered, all data will be processed")
		all, err := s.Games()
		if err != nil {
			return nil, err
		}
		games = all
	}

	table := &SamplingTable{}
	for _, game := range games {
		for _, sensor := range sensors.All() {
			rec, err := s.Load(game, sensor.Code)
			if err != nil {
				return nil, err
			}
			table.Append(game, sensor.Name, rec.Intervals())
		}
		s.log.WithFields(logrus.Fields{"game": game, "rows": table.Len()}).Debug("sampling intervals collected")
	}
	return table, nil
}
