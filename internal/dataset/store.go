package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/sensors"
)

const (
	csvExt     = ".csv"
	suffixLen  = sensors.CodeLen + len(csvExt)
	timeColumn = "time"
)

// Store reads recordings laid out as <dir>/<game><sensor>.csv.
type Store struct {
	dir       string
	delimiter rune
	decimal   rune
	log       logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithDelimiter sets the CSV field separator.
func WithDelimiter(r rune) Option {
	return func(s *Store) { s.delimiter = r }
}

// WithDecimal sets the decimal separator used inside numbers.
func WithDecimal(r rune) Option {
	return func(s *Store) { s.decimal = r }
}

// WithLogger routes diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:       dir,
		delimiter: ',',
		decimal:   '.',
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file holding one sensor of one game.
func (s *Store) Path(game, sensor string) string {
	return filepath.Join(s.dir, game+sensor+csvExt)
}

// Games lists the distinct games found in the directory. A game is the
// file name without its sensor code and extension.
func (s *Store) Games() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) <= suffixLen || !strings.HasSuffix(name, csvExt) {
			continue
		}
		code := name[len(name)-suffixLen : len(name)-len(csvExt)]
		if _, ok := sensors.Lookup(code); !ok {
			s.log.WithField("file", name).Debug("skipping file without a sensor suffix")
			continue
		}
		seen[name[:len(name)-suffixLen]] = struct{}{}
	}

	games := make([]string, 0, len(seen))
	for g := range seen {
		games = append(games, g)
	}
	sort.Strings(games)
	return games, nil
}

// Sensors lists the sensor codes recorded for game, in canonical order.
func (s *Store) Sensors(game string) ([]string, error) {
	codes := make([]string, 0, len(sensors.Codes()))
	for _, code := range sensors.Codes() {
		_, err := os.Stat(s.Path(game, code))
		if err == nil {
			codes = append(codes, code)
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return codes, nil
}

// Load reads the recording of one sensor of one game.
func (s *Store) Load(game, sensor string) (*Recording, error) {
	if _, ok := sensors.Lookup(sensor); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSensor, sensor)
	}

	path := s.Path(game, sensor)
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rec, err := s.read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rec.Game = game
	rec.Sensor = sensor

	s.log.WithFields(logrus.Fields{
		"game":    game,
		"sensor":  sensor,
		"samples": rec.Len(),
	}).Debug("loaded recording")
	return rec, nil
}

func (s *Store) read(r io.Reader) (*Recording, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, timeColumn)
		}
		return nil, err
	}

	names := []string{timeColumn, AxisX.Column(), AxisY.Column(), AxisZ.Column()}
	cols := make([]int, len(names))
	for i, name := range names {
		cols[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == name {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	rec := &Recording{}
	dst := []*[]float64{&rec.Time, &rec.X, &rec.Y, &rec.Z}
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		for i, col := range cols {
			if col >= len(record) {
				return nil, fmt.Errorf("line %d: %w: %s", line, ErrMissingColumn, names[i])
			}
			v, err := s.parseFloat(record[col])
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, names[i], err)
			}
			*dst[i] = append(*dst[i], v)
		}
	}
	return rec, nil
}

func (s *Store) parseFloat(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if s.decimal != '.' {
		field = strings.ReplaceAll(field, string(s.decimal), ".")
	}
	return strconv.ParseFloat(field, 64)
}
