// internal/plot/plot.go
// Package plot rasterizes 2-D numeric matrices (attention weights, speech
// features) into PNG heatmaps for embedding in HTML reports.
package plot

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/qiangzhongwork/xnmt/internal/util"
)

// Raster images are written at a fixed DPI so embedded <img> sizes stay
// stable across runs.
const rasterDPI = 100

// Attention renders a cell-per-token-pair heatmap with rows = source words
// (row 0 at top) and columns = target words, color range fixed at [0,1].
// Matrix values outside [0,1] are clamped. An empty fileName is a headless
// no-op.
func Attention(srcWords, trgWords []string, m mat.Matrix, fileName string) error {
	if fileName == "" {
		return nil
	}
	rows, cols := m.Dims()

	pal, err := brewer.GetPalette(brewer.TypeSequential, "Blues", 9)
	if err != nil {
		return fmt.Errorf("attention palette: %w", err)
	}
	grid := &matrixGrid{m: m, flipRows: true}
	heat := plotter.NewHeatMap(grid, pal)
	heat.Min, heat.Max = 0, 1

	p := gplot.New()
	p.Add(heat)
	p.X.Tick.Label.Font.Size = tickFontSize(srcWords, trgWords)
	p.Y.Tick.Label.Font.Size = p.X.Tick.Label.Font.Size
	if len(trgWords) == cols {
		p.NominalX(trgWords...)
	}
	// Row 0 is drawn at the top, so the label order is reversed to match.
	if len(srcWords) == rows {
		reversed := make([]string, rows)
		for i, w := range srcWords {
			reversed[rows-1-i] = w
		}
		p.NominalY(reversed...)
	}

	return writePNG(p, fileName, 8*vg.Inch, 8*vg.Inch)
}

// SpeechFeatures renders a feature matrix as a narrow heatmap with a
// diverging color scale and no axes. With vertical set, the matrix is
// transposed so time runs down the image. An empty fileName is a headless
// no-op.
func SpeechFeatures(m mat.Matrix, fileName string, vertical bool) error {
	if fileName == "" {
		return nil
	}
	pal, err := brewer.GetPalette(brewer.TypeDiverging, "RdBu", 11)
	if err != nil {
		return fmt.Errorf("feature palette: %w", err)
	}
	var grid plotter.GridXYZ = &matrixGrid{m: m}
	if vertical {
		grid = &matrixGrid{m: m.T()}
	}
	// coolwarm-style scale: low values blue, high values red.
	heat := plotter.NewHeatMap(grid, palette.Reverse(pal))
	heat.Min, heat.Max = 0, 1

	p := gplot.New()
	p.Add(heat)
	p.HideAxes()

	return writePNG(p, fileName, 1*vg.Inch, 8*vg.Inch)
}

// tickFontSize shrinks the label font as the joined label text grows, so
// dense sentences stay legible.
func tickFontSize(srcWords, trgWords []string) vg.Length {
	longest := len(strings.Join(srcWords, ""))
	if n := len(strings.Join(trgWords, "")); n > longest {
		longest = n
	}
	switch {
	case longest > 100:
		return vg.Points(4)
	case longest > 50:
		return vg.Points(7)
	default:
		return vg.Points(10)
	}
}

func writePNG(p *gplot.Plot, fileName string, width, height vg.Length) error {
	if err := util.MakeParentDir(fileName); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(rasterDPI))
	p.Draw(draw.New(canvas))

	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// matrixGrid adapts a mat.Matrix to plotter.GridXYZ. Values are clamped to
// [0,1] to honor the fixed color range. With flipRows set, matrix row 0 is
// drawn at the top of the image.
type matrixGrid struct {
	m        mat.Matrix
	flipRows bool
}

func (g *matrixGrid) Dims() (c, r int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g *matrixGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	if g.flipRows {
		r = rows - 1 - r
	}
	v := g.m.At(r, c)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (g *matrixGrid) X(c int) float64 { return float64(c) }

func (g *matrixGrid) Y(r int) float64 { return float64(r) }
