// internal/report/input.go
package report

import (
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Vocab maps token ids to their surface strings.
type Vocab interface {
	Word(id int) string
}

// Output is the generated hypothesis for one sentence.
type Output interface {
	Words() []string
}

// Processor turns a generated output into a display string (detokenization).
type Processor interface {
	String(out Output) string
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(out Output) string

func (f ProcessorFunc) String(out Output) string { return f(out) }

// Input carries everything a reporter may want to know about one sentence.
// Most fields are optional; each reporter reads the fields it understands
// and ignores the rest, so new fields never break existing reporters.
type Input struct {
	// Index is the running sentence number within the decoding run.
	Index int
	// SrcTokens holds the source token ids; resolved through SrcVocab.
	SrcTokens []int
	SrcVocab  Vocab
	// SrcFeatures is set instead of SrcTokens when the source modality is
	// non-textual (e.g. speech features). Non-nil means speech input.
	SrcFeatures *mat.Dense
	// Output and OutputProc produce the target-side display string.
	Output     Output
	OutputProc Processor
	// Reference is the optional gold-standard target string.
	Reference string
	// Attention holds alignment weights in [0,1]; rows are source
	// positions, columns are target positions.
	Attention *mat.Dense
	// Segmentation holds one decision code per source token.
	Segmentation []int
	// Fields carries the merged per-sentence records from the collectors.
	Fields Fields
}

// SourceIsSpeech reports whether the source side is a feature array rather
// than a token sequence.
func (in Input) SourceIsSpeech() bool {
	return in.SrcFeatures != nil
}

// SourceString renders the source tokens as a space-joined string, or ""
// for speech input or when no vocabulary is available.
func (in Input) SourceString() string {
	if in.SourceIsSpeech() || in.SrcVocab == nil {
		return ""
	}
	words := make([]string, len(in.SrcTokens))
	for i, id := range in.SrcTokens {
		words[i] = in.SrcVocab.Word(id)
	}
	return strings.Join(words, " ")
}

// TargetString renders the generated output through the post-processor,
// falling back to a space join when no processor is configured.
func (in Input) TargetString() string {
	if in.Output == nil {
		return ""
	}
	if in.OutputProc != nil {
		return in.OutputProc.String(in.Output)
	}
	return strings.Join(in.Output.Words(), " ")
}
