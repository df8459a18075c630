// internal/decode/output.go
package decode

import (
	"strings"

	"github.com/qiangzhongwork/xnmt/internal/report"
)

// Hypothesis is the generated word sequence for one sentence.
type Hypothesis []string

// Words implements report.Output.
func (h Hypothesis) Words() []string { return h }

// JoinerProcessor detokenizes subword output produced with a BPE-style
// joiner marker: "ab@@ cd" becomes "abcd".
type JoinerProcessor struct {
	// Joiner is the subword continuation marker; "@@" when empty.
	Joiner string
}

// String implements report.Processor.
func (p JoinerProcessor) String(out report.Output) string {
	joiner := p.Joiner
	if joiner == "" {
		joiner = "@@"
	}
	var b strings.Builder
	glue := false
	for i, word := range out.Words() {
		if i > 0 && !glue {
			b.WriteByte(' ')
		}
		glue = strings.HasSuffix(word, joiner)
		b.WriteString(strings.TrimSuffix(word, joiner))
	}
	return b.String()
}
