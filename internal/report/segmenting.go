// internal/report/segmenting.go
package report

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Segmentation decision codes emitted by a segmenting encoder, one per
// source token.
const (
	// SegmentRead keeps accumulating the current token into the pending segment.
	SegmentRead = 0
	// SegmentEmit appends the current token and finishes the pending segment.
	SegmentEmit = 1
	// Any other code flushes the pending segment and marks the current
	// token as deleted.
)

// Segment is one unit of a derived segmentation overlay.
type Segment struct {
	Text    string
	Deleted bool
}

// ApplySegmentation re-derives the segmentation overlay from per-token
// decisions. words and decisions must align 1:1; a trailing pending
// segment is flushed as non-deleted.
func ApplySegmentation(words []string, decisions []int) ([]Segment, error) {
	if len(words) != len(decisions) {
		return nil, fmt.Errorf("segmentation holds %d decisions for %d source words", len(decisions), len(words))
	}
	var segments []Segment
	var pending strings.Builder
	for i, word := range words {
		switch decisions[i] {
		case SegmentRead:
			pending.WriteString(word)
		case SegmentEmit:
			pending.WriteString(word)
			segments = append(segments, Segment{Text: pending.String()})
			pending.Reset()
		default:
			if pending.Len() > 0 {
				segments = append(segments, Segment{Text: pending.String()})
				pending.Reset()
			}
			segments = append(segments, Segment{Text: word, Deleted: true})
		}
	}
	if pending.Len() > 0 {
		segments = append(segments, Segment{Text: pending.String()})
	}
	return segments, nil
}

// SegmentingReporter writes one HTML page per run with, per sentence, the
// source/output text blocks and a segmentation overlay where deleted
// segments are rendered struck through in red.
type SegmentingReporter struct {
	html *htmlReport
}

// NewSegmentingReporter returns a reporter writing to the given path prefix.
func NewSegmentingReporter(reportPath string) *SegmentingReporter {
	return &SegmentingReporter{html: newHTMLReport(reportPath)}
}

// Report renders the section for one sentence and rewrites the HTML file.
func (r *SegmentingReporter) Report(in Input) error {
	main := r.html.startSentence(in.Index)
	srcStr, _ := r.html.addTextBlocks(main, in, false)

	segments, err := ApplySegmentation(strings.Fields(srcStr), in.Segmentation)
	if err != nil {
		return fmt.Errorf("sentence %d: %w", in.Index, err)
	}
	if len(segments) > 0 {
		// Position 2 puts the overlay right after the two text blocks.
		main.InsertChildAt(2, segmentationParagraph(segments))
	}
	return r.html.write()
}

// Finish is a no-op; every sentence is flushed as it is reported.
func (r *SegmentingReporter) Finish() error { return nil }

func segmentationParagraph(segments []Segment) *etree.Element {
	p := etree.NewElement("p")
	p.CreateText("Segmentation: ")
	for i, seg := range segments {
		if i > 0 {
			p.CreateText(", ")
		}
		span := p.CreateElement("span")
		if seg.Deleted {
			span.CreateAttr("style", "color: red")
			span.CreateElement("del").SetText(seg.Text)
		} else {
			span.SetText(seg.Text)
		}
	}
	return p
}
