// internal/report/html.go
package report

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/qiangzhongwork/xnmt/internal/util"
)

// htmlReport is the shared base for reporters that grow one HTML document
// over the course of a run. Each sentence appends a titled section; the
// whole tree is rewritten to {reportPath}.html after every sentence, so
// the file on disk is always complete. Cost per write is proportional to
// the sentences so far, which is fine at report sizes.
type htmlReport struct {
	reportPath string
	doc        *etree.Document
	body       *etree.Element
}

func newHTMLReport(reportPath string) *htmlReport {
	doc := etree.NewDocument()
	root := doc.CreateElement("html")
	meta := root.CreateElement("meta")
	meta.CreateAttr("charset", "UTF-8")
	head := root.CreateElement("head")
	head.CreateElement("title").SetText("Translation Report")
	body := root.CreateElement("body")
	return &htmlReport{reportPath: reportPath, doc: doc, body: body}
}

// startSentence appends a titled section for sentence idx and returns the
// section's content container. Prior sections are never touched.
func (h *htmlReport) startSentence(idx int) *etree.Element {
	section := h.body.CreateElement("div")
	title := section.CreateElement("h1")
	title.SetText(fmt.Sprintf("Translation Report for Sentence %d", idx))
	main := section.CreateElement("div")
	main.CreateAttr("name", "main_content")
	return main
}

// write serializes the entire accumulated tree, pretty-printed, to
// {reportPath}.html, overwriting the previous file.
func (h *htmlReport) write() error {
	// Indent mutates the tree, so serialize a copy to keep the live tree
	// free of whitespace tokens that would shift child positions.
	pretty := h.doc.Copy()
	pretty.Indent(2)
	text, err := pretty.WriteToString()
	if err != nil {
		return fmt.Errorf("serialize report tree: %w", err)
	}
	fileName := h.reportPath + ".html"
	if err := util.MakeParentDir(fileName); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := util.WriteFile(fileName, []byte(text)); err != nil {
		return fmt.Errorf("write report html: %w", err)
	}
	return nil
}

// addTextBlocks appends the Source/Output/Reference paragraphs for one
// sentence. The source block is omitted for speech input, the reference
// block when no reference is present. Returns the rendered source and
// target strings for reuse by the caller.
func (h *htmlReport) addTextBlocks(main *etree.Element, in Input, withReference bool) (srcStr, trgStr string) {
	srcStr = in.SourceString()
	trgStr = in.TargetString()

	type block struct {
		caption string
		text    string
	}
	var blocks []block
	if !in.SourceIsSpeech() {
		blocks = append(blocks, block{"Source Words", srcStr})
	}
	blocks = append(blocks, block{"Output Words", trgStr})
	if withReference && in.Reference != "" {
		blocks = append(blocks, block{"Reference Words", in.Reference})
	}
	for _, b := range blocks {
		p := main.CreateElement("p")
		p.CreateElement("b").SetText(b.caption + ": ")
		p.CreateElement("span").SetText(b.text)
	}
	return srcStr, trgStr
}
