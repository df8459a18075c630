// internal/charcut/charcut.go
// Package charcut renders character-level difference highlighting between
// generated hypotheses and their references, in the style of the CharCut
// comparison tool.
package charcut

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/qiangzhongwork/xnmt/internal/logging"
	"github.com/qiangzhongwork/xnmt/internal/report"
	"github.com/qiangzhongwork/xnmt/internal/util"
)

// Reporter accumulates hypothesis, reference and (for textual sources)
// source strings across a run and writes the comparison page at the end of
// inference. Nothing is written until Finish.
type Reporter struct {
	reportPath string
	matchSize  int
	altNorm    bool

	hypSents []string
	refSents []string
	srcSents []string
}

// New returns a charcut reporter writing to the given path prefix.
// matchSize is the minimum character run counted as a match (set to 1 for
// scripts without whitespace-delimited words); altNorm normalizes the
// per-sentence cost by the candidate length only.
func New(reportPath string, matchSize int, altNorm bool) *Reporter {
	if matchSize < 1 {
		matchSize = 1
	}
	return &Reporter{reportPath: reportPath, matchSize: matchSize, altNorm: altNorm}
}

// Report accumulates one sentence. The source string is kept only for
// textual sources; speech runs produce a two-column page.
func (r *Reporter) Report(in report.Input) error {
	if !in.SourceIsSpeech() {
		r.srcSents = append(r.srcSents, in.SourceString())
	}
	r.hypSents = append(r.hypSents, in.TargetString())
	r.refSents = append(r.refSents, in.Reference)
	return nil
}

// Finish writes the accumulated sentences as line-oriented text files, the
// diff comparison HTML page, and clears the accumulators. With nothing
// accumulated it is a no-op, so a second call at end of run is harmless.
func (r *Reporter) Finish() error {
	if len(r.hypSents) == 0 {
		return nil
	}
	hypFile := r.reportPath + ".charcut.tmp_c"
	refFile := r.reportPath + ".charcut.tmp_r"
	srcFile := r.reportPath + ".charcut.tmp_s"
	htmlFile := r.reportPath + ".charcut.html"

	if err := util.MakeParentDir(hypFile); err != nil {
		return fmt.Errorf("create charcut dir: %w", err)
	}
	if err := util.WriteFile(hypFile, []byte(strings.Join(r.hypSents, "\n"))); err != nil {
		return fmt.Errorf("write hypotheses: %w", err)
	}
	if err := util.WriteFile(refFile, []byte(strings.Join(r.refSents, "\n"))); err != nil {
		return fmt.Errorf("write references: %w", err)
	}
	if len(r.srcSents) > 0 {
		if err := util.WriteFile(srcFile, []byte(strings.Join(r.srcSents, "\n"))); err != nil {
			return fmt.Errorf("write sources: %w", err)
		}
	}

	page, err := comparePage(r.hypSents, r.refSents, r.srcSents, r.matchSize, r.altNorm)
	if err != nil {
		return fmt.Errorf("build charcut page: %w", err)
	}
	if err := util.WriteFile(htmlFile, []byte(page)); err != nil {
		return fmt.Errorf("write charcut html: %w", err)
	}
	logging.LogArtifact("html", htmlFile)

	r.hypSents, r.refSents, r.srcSents = nil, nil, nil
	return nil
}

// segmentDiff aligns a hypothesis against its reference at the character
// level. Equal runs shorter than matchSize are not credited as matches;
// they are folded into the surrounding edits.
func segmentDiff(hyp, ref string, matchSize int) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(ref, hyp, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return foldShortMatches(diffs, matchSize)
}

func foldShortMatches(diffs []diffmatchpatch.Diff, matchSize int) []diffmatchpatch.Diff {
	if matchSize <= 1 {
		return diffs
	}
	var out []diffmatchpatch.Diff
	for i, d := range diffs {
		// Short interior equal runs become a paired delete/insert; runs at
		// either end of the sentence still count as matches.
		interior := i > 0 && i < len(diffs)-1
		if d.Type == diffmatchpatch.DiffEqual && interior && len([]rune(d.Text)) < matchSize {
			out = append(out,
				diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: d.Text},
				diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: d.Text},
			)
			continue
		}
		out = append(out, d)
	}
	return out
}

// diffCost is the CharCut-style cost of an aligned sentence pair: the total
// character count of inserted and deleted runs, halved so a pure
// substitution costs the length of one side.
func diffCost(diffs []diffmatchpatch.Diff) float64 {
	edited := 0
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			edited += len([]rune(d.Text))
		}
	}
	return float64(edited) / 2
}

// normalizer returns the length the cost is divided by: the mean of both
// side lengths, or the candidate length alone under altNorm.
func normalizer(hyp, ref string, altNorm bool) float64 {
	hypLen := float64(len([]rune(hyp)))
	if altNorm {
		if hypLen == 0 {
			return 1
		}
		return hypLen
	}
	refLen := float64(len([]rune(ref)))
	norm := (hypLen + refLen) / 2
	if norm == 0 {
		return 1
	}
	return norm
}
