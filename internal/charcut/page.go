// internal/charcut/page.go
package charcut

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	lev "github.com/agnivade/levenshtein"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type pageData struct {
	Title      string
	HasSource  bool
	Rows       []pageRow
	MeanScore  string
	TotalEdits int
}

type pageRow struct {
	Index      int
	Source     string
	Hypothesis template.HTML
	Reference  template.HTML
	Score      string
	Distance   int
}

// comparePage builds the standalone comparison page for the accumulated
// sentences. Hypothesis cells highlight insertions, reference cells
// highlight deletions; matched runs are left unstyled.
func comparePage(hyps, refs, srcs []string, matchSize int, altNorm bool) (string, error) {
	rows := make([]pageRow, 0, len(hyps))
	var scoreSum float64
	var editSum int
	for i, hyp := range hyps {
		ref := ""
		if i < len(refs) {
			ref = refs[i]
		}
		diffs := segmentDiff(hyp, ref, matchSize)
		score := diffCost(diffs) / normalizer(hyp, ref, altNorm)
		scoreSum += score
		distance := lev.ComputeDistance(hyp, ref)
		editSum += distance

		row := pageRow{
			Index:      i,
			Hypothesis: renderSide(diffs, diffmatchpatch.DiffInsert, "ins"),
			Reference:  renderSide(diffs, diffmatchpatch.DiffDelete, "del"),
			Score:      fmt.Sprintf("%.3f", score),
			Distance:   distance,
		}
		if i < len(srcs) {
			row.Source = srcs[i]
		}
		rows = append(rows, row)
	}

	mean := 0.0
	if len(rows) > 0 {
		mean = scoreSum / float64(len(rows))
	}
	data := pageData{
		Title:      "Character-Level Comparison",
		HasSource:  len(srcs) > 0,
		Rows:       rows,
		MeanScore:  fmt.Sprintf("%.3f", mean),
		TotalEdits: editSum,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderSide flattens one side of the alignment: equal runs plus the edit
// runs belonging to that side, wrapped in a styled span.
func renderSide(diffs []diffmatchpatch.Diff, keep diffmatchpatch.Operation, class string) template.HTML {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(html.EscapeString(d.Text))
		case keep:
			b.WriteString(`<span class="` + class + `">`)
			b.WriteString(html.EscapeString(d.Text))
			b.WriteString(`</span>`)
		}
	}
	return template.HTML(b.String())
}

var pageTemplate = template.Must(template.New("charcut-page").Parse(pageTemplateHTML))

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #cbd5e1; padding: 0.4rem 0.6rem; vertical-align: top; }
    th { background: #f1f5f9; text-align: left; }
    td.num { text-align: right; white-space: nowrap; }
    span.ins { background: #dcfce7; }
    span.del { background: #fee2e2; text-decoration: line-through; }
    p.summary { color: #475569; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p class="summary">Mean cost {{ .MeanScore }} over {{ len .Rows }} sentences ({{ .TotalEdits }} character edits total).</p>
  <table>
    <tr>
      <th>#</th>
      {{- if .HasSource }}
      <th>Source</th>
      {{- end }}
      <th>Hypothesis</th>
      <th>Reference</th>
      <th>Cost</th>
      <th>Edits</th>
    </tr>
    {{- range .Rows }}
    <tr>
      <td class="num">{{ .Index }}</td>
      {{- if $.HasSource }}
      <td>{{ .Source }}</td>
      {{- end }}
      <td>{{ .Hypothesis }}</td>
      <td>{{ .Reference }}</td>
      <td class="num">{{ .Score }}</td>
      <td class="num">{{ .Distance }}</td>
    </tr>
    {{- end }}
  </table>
</body>
</html>
`
