// internal/decode/decode_test.go
package decode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qiangzhongwork/xnmt/internal/report"
)

func writeDump(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decode.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestLoadParsesRecords(t *testing.T) {
	t.Parallel()

	path := writeDump(t,
		`{"index": 0, "src_tokens": [3, 7], "output": ["good", "morning"], "reference": "good morning", "attention": [[0.9, 0.1], [0.2, 0.8]]}`,
		``,
		`{"index": 1, "output": ["bye"], "segmentation": [1], "fields": {"entropy": 0.4}}`,
	)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count=%d want 2", len(records))
	}
	if records[0].Reference != "good morning" {
		t.Fatalf("reference=%q", records[0].Reference)
	}
	if len(records[0].Attention) != 2 {
		t.Fatalf("attention rows=%d want 2", len(records[0].Attention))
	}
	if got := records[1].Fields["entropy"]; got != 0.4 {
		t.Fatalf("fields entropy=%v want 0.4", got)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeDump(t,
		`{"index": 0, "output": ["hi"], "beam_size": 5, "decoder_state": {"layer": 2}}`,
	)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load rejected unknown keys: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("record count=%d want 1", len(records))
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{name: "missing output", line: `{"index": 0}`},
		{name: "negative index", line: `{"index": -1, "output": ["x"]}`},
		{name: "attention out of range", line: `{"index": 0, "output": ["x"], "attention": [[1.7]]}`},
		{name: "wrong output type", line: `{"index": 0, "output": "not an array"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeDump(t, tt.line)
			if _, err := Load(path); err == nil {
				t.Fatalf("Load accepted invalid record %s", tt.line)
			} else if !strings.Contains(err.Error(), ":1:") {
				t.Fatalf("error does not name the line: %v", err)
			}
		})
	}
}

func TestRecordInputBuildsMatrices(t *testing.T) {
	t.Parallel()

	rec := Record{
		Index:       2,
		OutputWords: []string{"a", "b"},
		Attention:   [][]float64{{0.5, 0.5}, {0.1, 0.9}, {0.3, 0.7}},
	}
	in, err := rec.Input(nil, nil)
	if err != nil {
		t.Fatalf("Input returned error: %v", err)
	}
	rows, cols := in.Attention.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("attention dims=%dx%d want 3x2", rows, cols)
	}
	if in.TargetString() != "a b" {
		t.Fatalf("TargetString=%q", in.TargetString())
	}
}

func TestRecordInputRejectsRaggedMatrix(t *testing.T) {
	t.Parallel()

	rec := Record{
		Index:       0,
		OutputWords: []string{"a"},
		Attention:   [][]float64{{0.5, 0.5}, {0.1}},
	}
	if _, err := rec.Input(nil, nil); err == nil {
		t.Fatalf("Input accepted ragged attention matrix")
	}
}

func TestJoinerProcessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{name: "plain words", words: []string{"good", "morning"}, want: "good morning"},
		{name: "bpe joiner", words: []string{"mor@@", "ning", "all"}, want: "morning all"},
		{name: "trailing joiner kept bare", words: []string{"half@@"}, want: "half"},
		{name: "empty output", words: nil, want: ""},
	}

	proc := JoinerProcessor{}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := proc.String(Hypothesis(tt.words)); got != tt.want {
				t.Fatalf("String(%v)=%q want %q", tt.words, got, tt.want)
			}
		})
	}
}

var _ report.Output = Hypothesis(nil)
var _ report.Processor = JoinerProcessor{}
