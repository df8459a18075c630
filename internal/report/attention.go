// internal/report/attention.go
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/qiangzhongwork/xnmt/internal/logging"
	"github.com/qiangzhongwork/xnmt/internal/plot"
	"github.com/qiangzhongwork/xnmt/internal/util"
)

// AttentionReporter writes one HTML page per run with, per sentence, the
// source/output/reference text blocks and a rasterized attention heatmap.
// Speech input additionally gets a feature heatmap next to the attentions.
type AttentionReporter struct {
	html *htmlReport
}

// NewAttentionReporter returns a reporter writing to the given path prefix.
func NewAttentionReporter(reportPath string) *AttentionReporter {
	return &AttentionReporter{html: newHTMLReport(reportPath)}
}

// Report renders the section and images for one sentence and rewrites the
// HTML file.
func (r *AttentionReporter) Report(in Input) error {
	if in.Attention == nil {
		return fmt.Errorf("sentence %d: no attention matrix recorded", in.Index)
	}
	main := r.html.startSentence(in.Index)
	srcStr, trgStr := r.html.addTextBlocks(main, in, true)
	if err := r.addAttention(main, in, srcStr, trgStr, "Attentions"); err != nil {
		return err
	}
	return r.html.write()
}

// Finish is a no-op; every sentence is flushed as it is reported.
func (r *AttentionReporter) Finish() error { return nil }

func (r *AttentionReporter) addAttention(main *etree.Element, in Input, srcStr, trgStr, desc string) error {
	var featFile string
	if in.SourceIsSpeech() {
		featFile = fmt.Sprintf("%s.src_feat.%d.png", r.html.reportPath, in.Index)
		if err := plot.SpeechFeatures(in.SrcFeatures, featFile, true); err != nil {
			return fmt.Errorf("sentence %d: plot speech features: %w", in.Index, err)
		}
		logging.LogArtifact("png", featFile)
	}

	p := main.CreateElement("p")
	p.CreateElement("b").SetText(desc + ":")
	p.CreateElement("br")
	attFile := fmt.Sprintf("%s.%s.%d.png", r.html.reportPath, util.ValidFilename(desc), in.Index)

	table := p.CreateElement("table")
	row := table.CreateElement("tr")
	left := row.CreateElement("td")
	right := row.CreateElement("td")
	if in.SourceIsSpeech() {
		img := left.CreateElement("img")
		img.CreateAttr("src", filepath.Base(featFile))
		img.CreateAttr("alt", "speech features")
	}
	img := right.CreateElement("img")
	// Image paths are relative so the report directory can be moved whole.
	img.CreateAttr("src", filepath.Base(attFile))
	img.CreateAttr("alt", "attention matrix")

	if err := plot.Attention(strings.Fields(srcStr), strings.Fields(trgStr), in.Attention, attFile); err != nil {
		return fmt.Errorf("sentence %d: plot attentions: %w", in.Index, err)
	}
	logging.LogArtifact("png", attFile)
	return nil
}
