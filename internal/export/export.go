// Package export writes stored phase-track runs in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"
	"gonum.org/v1/gonum/mat"

	"github.com/Intelligent-Systems-Phystech/MobileSensorData/internal/storage"
)

type Data struct {
	storage.RunMetadata
	Points     int         `json:"points"`
	Projection [][]float64 `json:"projection"`
	Basis      [][]float64 `json:"basis"`
}

// JSON writes the run metadata together with the projected trajectory and
// the principal axes.
func JSON(w io.Writer, meta storage.RunMetadata, projection, basis mat.Matrix) error {
	data := Data{
		RunMetadata: meta,
		Projection:  rowsOf(projection),
		Basis:       rowsOf(basis),
	}
	data.Points = len(data.Projection)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// CSV writes the projected trajectory with an index column.
func CSV(w io.Writer, projection mat.Matrix) error {
	rows, cols := projection.Dims()
	cw := csv.NewWriter(w)

	header := []string{"index"}
	for j := 0; j < cols; j++ {
		header = append(header, fmt.Sprintf("pc%d", j+1))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, cols+1)
	for i := 0; i < rows; i++ {
		record[0] = strconv.Itoa(i)
		for j := 0; j < cols; j++ {
			record[j+1] = strconv.FormatFloat(projection.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Point is one row of the Parquet export.
type Point struct {
	Index int64   `parquet:"name=index, type=INT64"`
	PC1   float64 `parquet:"name=pc1, type=DOUBLE"`
	PC2   float64 `parquet:"name=pc2, type=DOUBLE"`
	PC3   float64 `parquet:"name=pc3, type=DOUBLE"`
}

// Parquet writes the first three components of projection to path, one
// row per trajectory point. Missing components are written as zero.
func Parquet(path string, projection mat.Matrix) (err error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer func() {
		if cerr := fw.Close(); err == nil {
			err = cerr
		}
	}()

	pw, err := writer.NewParquetWriter(fw, new(Point), 4)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	rows, cols := projection.Dims()
	for i := 0; i < rows; i++ {
		var pc [3]float64
		for j := 0; j < min(cols, len(pc)); j++ {
			pc[j] = projection.At(i, j)
		}
		if err := pw.Write(Point{Index: int64(i), PC1: pc[0], PC2: pc[1], PC3: pc[2]}); err != nil {
			return fmt.Errorf("failed to write parquet row %d: %w", i, err)
		}
	}
	return pw.WriteStop()
}

func rowsOf(m mat.Matrix) [][]float64 {
	if m == nil {
		return nil
	}
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
