package chartpng

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/jmehdipour/credit-insights/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pixels converts a pixel count to a length at the 96 dpi the png canvas uses.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}

func newPlot(spec model.ChartSpec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XAxis
	p.Y.Label.Text = spec.YAxis
	return p
}

func encode(p *plot.Plot, opt Options) ([]byte, error) {
	w, err := p.WriterTo(pixels(opt.Width), pixels(opt.Height), "png")
	if err != nil {
		return nil, fmt.Errorf("png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func renderBox(spec model.ChartSpec, opt Options) ([]byte, error) {
	var hasData bool
	for _, b := range spec.Boxes {
		if b.Count > 0 {
			hasData = true
			break
		}
	}
	if !hasData {
		return nil, ErrEmptyChart
	}

	p := newPlot(spec)
	names := make([]string, len(spec.Boxes))
	for i, b := range spec.Boxes {
		names[i] = b.Label
		p.Add(statBox{
			loc:   float64(i),
			stats: b,
			width: pixels(opt.Width) / vg.Length(len(spec.Boxes)*3),
			fill:  parseHex(seriesColor(spec, i)),
		})
	}
	p.NominalX(names...)
	return encode(p, opt)
}

// statBox draws a box plot from precomputed statistics; plotter.BoxPlot wants
// the raw sample.
type statBox struct {
	loc   float64
	stats model.BoxStats
	width vg.Length
	fill  color.Color
}

func (s statBox) Plot(c draw.Canvas, plt *plot.Plot) {
	if s.stats.Count == 0 {
		return
	}
	trX, trY := plt.Transforms(&c)
	x := trX(s.loc)
	half := s.width / 2

	q1, q3, med := trY(s.stats.Q1), trY(s.stats.Q3), trY(s.stats.Median)
	lo, hi := trY(s.stats.LowerFence), trY(s.stats.UpperFence)

	rect := []vg.Point{
		{X: x - half, Y: q1},
		{X: x + half, Y: q1},
		{X: x + half, Y: q3},
		{X: x - half, Y: q3},
	}
	c.FillPolygon(s.fill, c.ClipPolygonY(rect))

	ls := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
	c.StrokeLines(ls, c.ClipLinesY(append(rect, rect[0]))...)
	c.StrokeLine2(ls, x-half, med, x+half, med)
	c.StrokeLine2(ls, x, q3, x, hi)
	c.StrokeLine2(ls, x, q1, x, lo)
	c.StrokeLine2(ls, x-half/2, hi, x+half/2, hi)
	c.StrokeLine2(ls, x-half/2, lo, x+half/2, lo)
}

func (s statBox) DataRange() (xmin, xmax, ymin, ymax float64) {
	return s.loc - 0.5, s.loc + 0.5, s.stats.LowerFence, s.stats.UpperFence
}

func renderStackedBar(spec model.ChartSpec, opt Options) ([]byte, error) {
	if len(spec.Categories) == 0 {
		return nil, ErrEmptyChart
	}

	p := newPlot(spec)
	width := pixels(opt.Width) / vg.Length(len(spec.Categories)*2)
	var prev *plotter.BarChart
	for i, s := range spec.Series {
		bar, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return nil, fmt.Errorf("bar series %q: %w", s.Name, err)
		}
		bar.Color = parseHex(seriesColor(spec, i))
		bar.LineStyle.Width = 0
		if prev != nil {
			bar.StackOn(prev)
		}
		p.Add(bar)
		p.Legend.Add(s.Name, bar)
		prev = bar
	}
	p.Legend.Top = true
	p.NominalX(spec.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	return encode(p, opt)
}

// heatGrid adapts masked heatmap cells to plotter.GridXYZ. Row 0 of the spec
// is drawn at the top.
type heatGrid struct {
	cells    [][]*float64
	min, max float64
}

func (g heatGrid) Dims() (c, r int) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	return len(g.cells[0]), len(g.cells)
}

func (g heatGrid) Z(c, r int) float64 {
	v := g.cells[len(g.cells)-1-r][c]
	if v == nil {
		return math.NaN()
	}
	return *v
}

func (g heatGrid) X(c int) float64 { return float64(c) }
func (g heatGrid) Y(r int) float64 { return float64(r) }
func (g heatGrid) Min() float64    { return g.min }
func (g heatGrid) Max() float64    { return g.max }

func heatPalette(scale string, min, max float64) palette.Palette {
	if scale == "RdBu_r" {
		cm := moreland.SmoothBlueRed()
		cm.SetMin(min)
		cm.SetMax(max)
		return cm.Palette(21)
	}
	// other scales name ColorBrewer sequential maps, e.g. YlGnBu
	if p, err := brewer.GetPalette(brewer.TypeSequential, scale, 9); err == nil {
		return p
	}
	return palette.Heat(16, 1)
}

func renderHeatmap(spec model.ChartSpec, opt Options) ([]byte, error) {
	h := spec.Heatmap
	if h == nil || len(h.Rows) == 0 || len(h.Columns) == 0 {
		return nil, ErrEmptyChart
	}

	grid := heatGrid{cells: h.Cells, min: h.Min, max: h.Max}
	hm := plotter.NewHeatMap(grid, heatPalette(h.ColorScale, h.Min, h.Max))
	hm.NaN = color.White

	p := newPlot(spec)
	p.Add(hm)

	format := "%.1f"
	if h.ColorScale == "RdBu_r" {
		format = "%.2f"
	}
	var lbl plotter.XYLabels
	for r, row := range h.Cells {
		for c, v := range row {
			if v == nil {
				continue
			}
			lbl.XYs = append(lbl.XYs, plotter.XY{X: float64(c), Y: float64(len(h.Cells) - 1 - r)})
			lbl.Labels = append(lbl.Labels, fmt.Sprintf(format, *v))
		}
	}
	if len(lbl.XYs) > 0 {
		labels, err := plotter.NewLabels(lbl)
		if err != nil {
			return nil, fmt.Errorf("heatmap labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(labels)
	}

	rows := make([]string, len(h.Rows))
	for i, name := range h.Rows {
		rows[len(h.Rows)-1-i] = name
	}
	p.NominalX(h.Columns...)
	p.NominalY(rows...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	return encode(p, opt)
}
