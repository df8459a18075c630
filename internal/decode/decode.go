// internal/decode/decode.go
// Package decode reads per-sentence decode dumps (JSONL) and converts them
// into report inputs. Unknown keys in a record are ignored so newer
// decoders can add fields without breaking older report tooling.
package decode

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/qiangzhongwork/xnmt/internal/report"
)

// Record is one sentence of a decode dump.
type Record struct {
	Index        int           `json:"index"`
	SrcTokens    []int         `json:"src_tokens,omitempty"`
	SrcFeatures  [][]float64   `json:"src_features,omitempty"`
	OutputWords  []string      `json:"output"`
	Reference    string        `json:"reference,omitempty"`
	Attention    [][]float64   `json:"attention,omitempty"`
	Segmentation []int         `json:"segmentation,omitempty"`
	Fields       report.Fields `json:"fields,omitempty"`
}

// Load reads and validates a JSONL decode dump. Every line must satisfy
// the record schema; violations fail fast with the offending line number.
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open decode dump %q: %w", path, err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read decode dump %q: %w", path, err)
	}
	return records, nil
}

func parseRecord(line []byte) (Record, error) {
	if err := validateRecord(line); err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, fmt.Errorf("parse record: %w", err)
	}
	return rec, nil
}

// Input converts the record into a report input. voc may be nil for
// speech-source dumps; proc may be nil to fall back to space joining.
func (r Record) Input(voc report.Vocab, proc report.Processor) (report.Input, error) {
	in := report.Input{
		Index:        r.Index,
		SrcTokens:    r.SrcTokens,
		SrcVocab:     voc,
		Output:       Hypothesis(r.OutputWords),
		OutputProc:   proc,
		Reference:    r.Reference,
		Segmentation: r.Segmentation,
		Fields:       r.Fields,
	}
	if len(r.Attention) > 0 {
		m, err := denseFromRows(r.Attention)
		if err != nil {
			return report.Input{}, fmt.Errorf("sentence %d: attention: %w", r.Index, err)
		}
		in.Attention = m
	}
	if len(r.SrcFeatures) > 0 {
		m, err := denseFromRows(r.SrcFeatures)
		if err != nil {
			return report.Input{}, fmt.Errorf("sentence %d: src_features: %w", r.Index, err)
		}
		in.SrcFeatures = m
	}
	return in, nil
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("empty matrix row")
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged matrix: row %d has %d values, row 0 has %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}
