// internal/plot/plot_test.go
package plot

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func randomMatrix(rows, cols int, rng *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()
	}
	return mat.NewDense(rows, cols, data)
}

func labels(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

func TestAttentionHandlesShapeRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	shapes := []struct{ rows, cols int }{
		{1, 1},
		{1, 7},
		{9, 1},
		{12, 30},
		{100, 100},
	}
	for _, shape := range shapes {
		shape := shape
		t.Run(fmt.Sprintf("%dx%d", shape.rows, shape.cols), func(t *testing.T) {
			t.Parallel()
			file := filepath.Join(dir, fmt.Sprintf("att_%d_%d.png", shape.rows, shape.cols))
			m := randomMatrix(shape.rows, shape.cols, rand.New(rand.NewSource(int64(shape.rows*1000+shape.cols))))
			err := Attention(labels("s", shape.rows), labels("t", shape.cols), m, file)
			if err != nil {
				t.Fatalf("Attention(%dx%d) returned error: %v", shape.rows, shape.cols, err)
			}
			info, err := os.Stat(file)
			if err != nil {
				t.Fatalf("Stat error: %v", err)
			}
			if info.Size() == 0 {
				t.Fatalf("empty png written")
			}
		})
	}
}

func TestAttentionClampsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 2, []float64{-0.5, 1.5, 0.2, 0.8})
	file := filepath.Join(t.TempDir(), "clamped.png")
	if err := Attention([]string{"a", "b"}, []string{"x", "y"}, m, file); err != nil {
		t.Fatalf("Attention returned error for out-of-range values: %v", err)
	}
}

func TestAttentionWithoutLabels(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(4, 2, nil)
	file := filepath.Join(t.TempDir(), "nolabels.png")
	if err := Attention(nil, []string{"x", "y"}, m, file); err != nil {
		t.Fatalf("Attention returned error without source labels: %v", err)
	}
}

func TestAttentionEmptyFileNameIsNoOp(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 2, nil)
	if err := Attention([]string{"a", "b"}, []string{"x", "y"}, m, ""); err != nil {
		t.Fatalf("headless Attention returned error: %v", err)
	}
}

func TestAttentionCreatesParentDir(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "nested", "deeper", "att.png")
	m := mat.NewDense(3, 3, nil)
	if err := Attention(labels("s", 3), labels("t", 3), m, file); err != nil {
		t.Fatalf("Attention returned error: %v", err)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("image missing: %v", err)
	}
}

func TestSpeechFeatures(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	m := randomMatrix(40, 13, rng)

	for _, vertical := range []bool{true, false} {
		file := filepath.Join(t.TempDir(), fmt.Sprintf("feat_%v.png", vertical))
		if err := SpeechFeatures(m, file, vertical); err != nil {
			t.Fatalf("SpeechFeatures(vertical=%v) returned error: %v", vertical, err)
		}
		if _, err := os.Stat(file); err != nil {
			t.Fatalf("feature image missing: %v", err)
		}
	}
}

func TestTickFontSize(t *testing.T) {
	t.Parallel()

	short := labels("w", 3)
	var long []string
	for i := 0; i < 20; i++ {
		long = append(long, "abcdef")
	}

	if got := tickFontSize(short, short); got != 10 {
		t.Fatalf("short labels font=%v want 10", got)
	}
	// 20*6 = 120 characters joined.
	if got := tickFontSize(long, short); got != 4 {
		t.Fatalf("long labels font=%v want 4", got)
	}
	if got := tickFontSize(long[:10], short); got != 7 {
		t.Fatalf("medium labels font=%v want 7", got)
	}
}
