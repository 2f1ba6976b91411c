package bundle

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/Ragansu/fair-universe/pkg/schema"
)

// ReadLabels reads a .labels line file. Every value must be a class label.
func ReadLabels(path string) ([]int, error) {
	var out []int
	err := scanLines(path, func(n int, s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if v != schema.SignalLabel && v != schema.BackgroundLabel {
			return fmt.Errorf("line %d: label %d outside {0,1}", n, v)
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bundle: %s: %w", path, err)
	}
	return out, nil
}

// ReadWeights reads a .weights line file.
func ReadWeights(path string) ([]float64, error) {
	var out []float64
	err := scanLines(path, func(n int, s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bundle: %s: %w", path, err)
	}
	return out, nil
}

func scanLines(path string, visit func(int, string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		if err := visit(n, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
