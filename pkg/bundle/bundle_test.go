package bundle

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ragansu/fair-universe/pkg/gen"
)

func testPart() Part {
	return Part{
		Header:  DefaultHeader(2),
		X:       [][]float64{{1.5, -2}, {0.25, 3}},
		Labels:  []int{1, 0},
		Weights: []float64{0.5, 1.25},
	}
}

func TestWriterLayout(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	require.NoError(t, w.WriteTrain(testPart()))
	require.NoError(t, w.WriteTest(testPart()))

	for _, p := range []string{
		"train/data/train.csv",
		"train/labels/train.labels",
		"train/weights/train.weights",
		"test/data/test.csv",
		"test/labels/test.labels",
		"test/weights/test.weights",
	} {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, p)
	}
}

func TestWriterData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir).WriteTrain(testPart()))

	f, err := os.Open(filepath.Join(dir, "train/data/train.csv"))
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"x1", "x2"}, recs[0])
	assert.Equal(t, []string{"1.5", "-2"}, recs[1])
	assert.Equal(t, []string{"0.25", "3"}, recs[2])
}

func TestLineFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir).WriteTrain(testPart()))

	raw, err := os.ReadFile(filepath.Join(dir, "train/labels/train.labels"))
	require.NoError(t, err)
	assert.Equal(t, "1\n0", string(raw), "no trailing newline")

	labels, err := ReadLabels(filepath.Join(dir, "train/labels/train.labels"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, labels)

	weights, err := ReadWeights(filepath.Join(dir, "train/weights/train.weights"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.25}, weights)
}

func TestReadLabelsRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.labels")
	require.NoError(t, os.WriteFile(path, []byte("1\n3\n0"), 0o644))
	_, err := ReadLabels(path)
	assert.ErrorContains(t, err, "outside {0,1}")
}

func TestWriterFileIndex(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, FileIndex: 3}
	require.NoError(t, w.WriteTrain(testPart()))
	_, err := os.Stat(filepath.Join(dir, "train/data/train_3.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "train/labels/train_3.labels"))
	assert.NoError(t, err)
}

func TestWriterCompress(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, FileIndex: -1, Compress: true}
	require.NoError(t, w.WriteTrain(testPart()))

	f, err := os.Open(filepath.Join(dir, "train/data/train.csv.zst"))
	require.NoError(t, err)
	defer f.Close()
	zr, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()
	recs, err := csv.NewReader(zr).ReadAll()
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	assert.Equal(t, []string{"x1", "x2"}, recs[0])
}

func TestWriterParallelCheck(t *testing.T) {
	p := testPart()
	p.Labels = p.Labels[:1]
	err := NewWriter(t.TempDir()).WriteTrain(p)
	assert.ErrorContains(t, err, "parallel")
}

func TestWriteDataset(t *testing.T) {
	s := gen.Settings{
		ProblemDimension: 2,
		TotalEvents:      50,
		PB:               0.8,
		Theta:            0,
		L:                2,
		SignalSigmaScale: 0.3,
		Generator:        gen.GeneratorNormal,
		BackgroundMu:     []float64{0, 0},
		BackgroundSigma:  []float64{1, 1},
		Seed:             5,
	}
	g, err := gen.New(s)
	require.NoError(t, err)
	ds, err := g.Generate()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, NewWriter(dir).WriteDataset(ds))

	labels, err := ReadLabels(filepath.Join(dir, "train/labels/train.labels"))
	require.NoError(t, err)
	assert.Len(t, labels, ds.Nominal.Len())

	got, err := gen.LoadSettings(filepath.Join(dir, "settings/settings.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.DatasetID, "settings are stamped with a dataset id")
	assert.Equal(t, s.TotalEvents, got.TotalEvents)
}
