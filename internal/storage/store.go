package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/embedding"
)

const (
	metadataFile   = "metadata.json"
	projectionFile = "projection.csv"
	basisFile      = "basis.csv"
)

// ErrEmptyMatrix is returned when a stored matrix has no data rows.
var ErrEmptyMatrix = errors.New("storage: matrix file has no rows")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir returns the directory holding the run with the given id.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Game       string    `json:"game"`
	Sensor     string    `json:"sensor"`
	Axis       string    `json:"axis"`
	Window     int       `json:"window"`
	Components int       `json:"components"`
	Samples    int       `json:"samples"`
	Ratios     []float64 `json:"explained_variance_ratio"`
	Cumulative float64   `json:"cumulative_explained_variance"`
	Timestamp  time.Time `json:"timestamp"`
}

// Save writes one phase-track analysis. ID and Timestamp are filled in
// when empty; Components, Ratios and Cumulative are taken from res.
func (s *Store) Save(meta RunMetadata, res *embedding.Result) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s%s_%s_L%d_%d", meta.Game, meta.Sensor, meta.Axis, meta.Window, meta.Timestamp.UnixNano())
	}
	_, meta.Components = res.Projection.Dims()
	meta.Ratios = res.Ratios
	meta.Cumulative = res.Cumulative()

	runDir := s.Dir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeMatrix(filepath.Join(runDir, projectionFile), "pc", res.Projection); err != nil {
		return "", err
	}
	if err := writeMatrix(filepath.Join(runDir, basisFile), "lag", res.Basis); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeMatrix(path, prefix string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, cols := m.Dims()
	w := csv.NewWriter(f)

	header := make([]string, cols)
	for j := range header {
		header[j] = prefix + strconv.Itoa(j+1)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := range row {
			row[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all stored runs, newest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadProjection reads the projected trajectory, one row per point.
func (s *Store) LoadProjection(runID string) (*mat.Dense, error) {
	return readMatrix(filepath.Join(s.Dir(runID), projectionFile))
}

// LoadBasis reads the principal axes, one row per component.
func (s *Store) LoadBasis(runID string) (*mat.Dense, error) {
	return readMatrix(filepath.Join(s.Dir(runID), basisFile))
}

// ProjectionPath returns the CSV file behind LoadProjection.
func (s *Store) ProjectionPath(runID string) string {
	return filepath.Join(s.Dir(runID), projectionFile)
}

func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyMatrix, path)
	}

	cols := len(records[0])
	data := make([]float64, 0, (len(records)-1)*cols)
	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d column %d: %w", path, i+2, j+1, err)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(records)-1, cols, data), nil
}
