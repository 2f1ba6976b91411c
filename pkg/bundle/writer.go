// Package bundle reads and writes the competition bundle layout: data CSVs,
// label and weight line files, and the settings document, under
// train/{data,labels,weights}, test/{data,labels,weights} and settings/.
package bundle

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/Ragansu/fair-universe/pkg/gen"
)

// Part is one table of a bundle: a data matrix with its parallel labels and
// weights. Header names the data columns.
type Part struct {
	Header  []string
	X       [][]float64
	Labels  []int
	Weights []float64
}

// DefaultHeader names toy-dataset columns x1..xN.
func DefaultHeader(dim int) []string {
	out := make([]string, dim)
	for i := range out {
		out[i] = fmt.Sprintf("x%d", i+1)
	}
	return out
}

// Writer lays a bundle out under Dir.
type Writer struct {
	Dir string
	// FileIndex numbers the files (train_3.csv); negative means unnumbered
	// (train.csv).
	FileIndex int
	// Compress writes data files as zstd-compressed .csv.zst.
	Compress bool
}

// NewWriter returns an unnumbered, uncompressed Writer.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, FileIndex: -1}
}

func (w *Writer) stem(base string) string {
	if w.FileIndex < 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, w.FileIndex)
}

// WriteTrain writes the train part of the bundle.
func (w *Writer) WriteTrain(p Part) error { return w.writePart("train", p) }

// WriteTest writes the test part of the bundle.
func (w *Writer) WriteTest(p Part) error { return w.writePart("test", p) }

func (w *Writer) writePart(name string, p Part) error {
	if len(p.X) != len(p.Labels) || len(p.X) != len(p.Weights) {
		return fmt.Errorf("bundle: %s: data, labels and weights must be parallel: %d/%d/%d",
			name, len(p.X), len(p.Labels), len(p.Weights))
	}

	dataDir := filepath.Join(w.Dir, name, "data")
	labelsDir := filepath.Join(w.Dir, name, "labels")
	weightsDir := filepath.Join(w.Dir, name, "weights")
	for _, d := range []string{dataDir, labelsDir, weightsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("bundle: %w", err)
		}
	}

	stem := w.stem(name)
	if err := w.writeData(filepath.Join(dataDir, stem+".csv"), p); err != nil {
		return err
	}
	if err := writeLines(filepath.Join(labelsDir, stem+".labels"), len(p.Labels), func(i int) string {
		return strconv.Itoa(p.Labels[i])
	}); err != nil {
		return err
	}
	return writeLines(filepath.Join(weightsDir, stem+".weights"), len(p.Weights), func(i int) string {
		return strconv.FormatFloat(p.Weights[i], 'g', -1, 64)
	})
}

func (w *Writer) writeData(path string, p Part) error {
	var sink io.Writer
	var closers []io.Closer

	if w.Compress {
		path += ".zst"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	closers = append(closers, f)
	sink = f

	if w.Compress {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("bundle: %w", err)
		}
		closers = append(closers, zw)
		sink = zw
	}

	cw := csv.NewWriter(sink)
	if err := cw.Write(p.Header); err != nil {
		return closeAll(closers, fmt.Errorf("bundle: %w", err))
	}
	rec := make([]string, len(p.Header))
	for _, row := range p.X {
		if len(row) != len(p.Header) {
			return closeAll(closers, fmt.Errorf("bundle: row has %d values, header has %d", len(row), len(p.Header)))
		}
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return closeAll(closers, fmt.Errorf("bundle: %w", err))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return closeAll(closers, fmt.Errorf("bundle: %w", err))
	}
	return closeAll(closers, nil)
}

// closeAll closes in reverse order so the compressor flushes before the file.
func closeAll(closers []io.Closer, err error) error {
	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i].Close(); cerr != nil && err == nil {
			err = fmt.Errorf("bundle: %w", cerr)
		}
	}
	return err
}

// writeLines writes n newline-separated values with no trailing newline, the
// .labels/.weights file format.
func writeLines(path string, n int, line func(int) string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	for i := 0; i < n; i++ {
		s := line(i)
		if i < n-1 {
			s += "\n"
		}
		if _, err := io.WriteString(f, s); err != nil {
			f.Close()
			return fmt.Errorf("bundle: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	return nil
}

// WriteSettings stamps a dataset id onto the settings document if it has none
// and writes it under settings/.
func (w *Writer) WriteSettings(s gen.Settings) error {
	dir := filepath.Join(w.Dir, "settings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	if s.DatasetID == "" {
		s.DatasetID = uuid.NewString()
	}
	name := "settings.json"
	if w.FileIndex >= 0 {
		name = fmt.Sprintf("settings_%d.json", w.FileIndex)
	}
	return gen.SaveSettings(s, filepath.Join(dir, name))
}

// WriteDataset writes a generated dataset: the nominal set as train and the
// biased set as test, plus the settings document.
func (w *Writer) WriteDataset(ds *gen.Dataset) error {
	header := DefaultHeader(ds.Settings.ProblemDimension)
	if err := w.WriteTrain(Part{Header: header, X: ds.Nominal.X, Labels: ds.Nominal.Labels, Weights: ds.Nominal.Weights}); err != nil {
		return err
	}
	if err := w.WriteTest(Part{Header: header, X: ds.Biased.X, Labels: ds.Biased.Labels, Weights: ds.Biased.Weights}); err != nil {
		return err
	}
	return w.WriteSettings(ds.Settings)
}
