package chartpng

import (
	"bytes"
	"fmt"

	"github.com/jmehdipour/credit-insights/internal/model"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func fill(hex string) drawing.Color {
	c := parseHex(hex)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func renderPie(spec model.ChartSpec, opt Options) ([]byte, error) {
	if len(spec.Series) == 0 {
		return nil, ErrEmptyChart
	}
	vals := spec.Series[0].Values
	var total float64
	for _, v := range vals {
		total += v
	}
	if total <= 0 {
		return nil, ErrEmptyChart
	}

	values := make([]chart.Value, 0, len(vals))
	for i, v := range vals {
		if v <= 0 || i >= len(spec.Categories) {
			continue
		}
		values = append(values, chart.Value{
			Value: v,
			Label: fmt.Sprintf("%s %.1f%%", spec.Categories[i], v/total*100),
			Style: chart.Style{FillColor: fill(seriesColor(spec, i))},
		})
	}

	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  opt.Width,
		Height: opt.Height,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}

func renderBar(spec model.ChartSpec, opt Options) ([]byte, error) {
	if len(spec.Series) == 0 || len(spec.Categories) == 0 {
		return nil, ErrEmptyChart
	}
	vals := spec.Series[0].Values
	top := 1.0
	bars := make([]chart.Value, 0, len(vals))
	for i, v := range vals {
		if i >= len(spec.Categories) {
			break
		}
		if v > top {
			top = v
		}
		c := fill(seriesColor(spec, i))
		bars = append(bars, chart.Value{
			Value: v,
			Label: spec.Categories[i],
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		BarWidth:   opt.Width / (len(bars)*2 + 1),
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  spec.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar: %w", err)
	}
	return buf.Bytes(), nil
}

func renderLine(spec model.ChartSpec, opt Options) ([]byte, error) {
	n := len(spec.Categories)
	if n == 0 || len(spec.Series) == 0 {
		return nil, ErrEmptyChart
	}

	xs := make([]float64, n)
	ticks := make([]chart.Tick, n)
	for i, c := range spec.Categories {
		xs[i] = float64(i + 1)
		ticks[i] = chart.Tick{Value: xs[i], Label: c}
	}

	top := 1.0
	series := make([]chart.Series, 0, len(spec.Series))
	for i, s := range spec.Series {
		for _, v := range s.Values {
			if v > top {
				top = v
			}
		}
		c := fill(seriesColor(spec, i))
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 2, DotColor: c, DotWidth: 4},
		})
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      chart.XAxis{Name: spec.XAxis, Range: &chart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5}, Ticks: ticks},
		YAxis:      chart.YAxis{Name: spec.YAxis, Range: &chart.ContinuousRange{Min: 0, Max: top * 1.05}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render line: %w", err)
	}
	return buf.Bytes(), nil
}
