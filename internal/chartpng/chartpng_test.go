package chartpng

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/jmehdipour/credit-insights/internal/model"
)

func ptr(v float64) *float64 { return &v }

var scoreColors = []string{"#EF4444", "#F59E0B", "#10B981"}

func TestRenderEveryType(t *testing.T) {
	cats := []string{"Poor", "Standard", "Good"}
	specs := map[string]model.ChartSpec{
		"pie": {
			Type: model.ChartTypePie, Title: "Credit Score Composition", Categories: cats,
			Series: []model.Series{{Name: "Customers", Values: []float64{3, 5, 2}}}, Colors: scoreColors,
		},
		"bar": {
			Type: model.ChartTypeBar, Title: "Average Delayed Payments", Categories: cats,
			Series: []model.Series{{Name: "Avg", Values: []float64{14.2, 12.1, 7.3}}}, Colors: scoreColors,
		},
		"stacked": {
			Type: model.ChartTypeBar, Title: "Payment Behavior", BarMode: "stack",
			Categories: []string{"Low_spent", "High_spent"},
			Series: []model.Series{
				{Name: "Poor", Values: []float64{4, 1}},
				{Name: "Standard", Values: []float64{2, 3}},
				{Name: "Good", Values: []float64{1, 5}},
			},
			Colors: scoreColors,
		},
		"line": {
			Type: model.ChartTypeLine, Title: "Monthly", Categories: []string{"January", "February", "March"},
			Series: []model.Series{
				{Name: "Poor", Values: []float64{30, 25, 20}},
				{Name: "Standard", Values: []float64{50, 50, 55}},
				{Name: "Good", Values: []float64{20, 25, 25}},
			},
			Colors: scoreColors,
		},
		"box": {
			Type: model.ChartTypeBox, Title: "Income", Categories: cats, Colors: scoreColors,
			Boxes: []model.BoxStats{
				{Label: "Poor", Count: 4, Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 9, LowerFence: 1, UpperFence: 5, Outliers: 1},
				{Label: "Standard"},
				{Label: "Good", Count: 2, Min: 5, Q1: 5.5, Median: 6, Q3: 6.5, Max: 7, LowerFence: 5, UpperFence: 7},
			},
		},
		"heatmap": {
			Type: model.ChartTypeHeatmap, Title: "Correlation",
			Heatmap: &model.Heatmap{
				Rows: []string{"a", "b"}, Columns: []string{"a", "b"},
				Cells:      [][]*float64{{nil, nil}, {ptr(-0.4), nil}},
				ColorScale: "RdBu_r", Min: -1, Max: 1,
			},
		},
		"occupation": {
			Type: model.ChartTypeHeatmap, Title: "Occupation",
			Heatmap: &model.Heatmap{
				Rows: []string{"Doctor", "Writer"}, Columns: cats,
				Cells:      [][]*float64{{ptr(20), ptr(50), ptr(30)}, {ptr(60), ptr(40), ptr(0)}},
				ColorScale: "YlGnBu", Min: 0, Max: 100,
			},
		},
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			out, err := Render(spec, Options{Width: 480, Height: 320})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if _, err := png.Decode(bytes.NewReader(out)); err != nil {
				t.Fatalf("invalid png: %v", err)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	cats := []string{"Poor", "Standard", "Good"}
	empty := []model.ChartSpec{
		{Type: model.ChartTypePie, Categories: cats, Series: []model.Series{{Values: []float64{0, 0, 0}}}},
		{Type: model.ChartTypeBox, Boxes: []model.BoxStats{{Label: "Poor"}}},
		{Type: model.ChartTypeLine},
		{Type: model.ChartTypeHeatmap, Heatmap: &model.Heatmap{}},
	}
	for _, spec := range empty {
		if _, err := Render(spec, Options{}); !errors.Is(err, ErrEmptyChart) {
			t.Errorf("%s: err = %v, want ErrEmptyChart", spec.Type, err)
		}
	}
}

func TestRenderUnsupported(t *testing.T) {
	if _, err := Render(model.ChartSpec{Type: "radar"}, Options{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseHex(t *testing.T) {
	c := parseHex("#10B981")
	if c.R != 0x10 || c.G != 0xB9 || c.B != 0x81 || c.A != 255 {
		t.Fatalf("parseHex = %+v", c)
	}
	if g := parseHex("teal"); g.R != 128 {
		t.Fatalf("fallback = %+v", g)
	}
}

func TestHeatPaletteYlGnBu(t *testing.T) {
	cs := heatPalette("YlGnBu", 0, 100).Colors()
	if len(cs) != 9 {
		t.Fatalf("colors = %d, want 9", len(cs))
	}
	rgb := func(c color.Color) [3]uint32 {
		r, g, b, _ := c.RGBA()
		return [3]uint32{r >> 8, g >> 8, b >> 8}
	}
	if got := rgb(cs[0]); got != [3]uint32{0xff, 0xff, 0xd9} {
		t.Errorf("low end = %x, want light yellow", got)
	}
	if got := rgb(cs[8]); got != [3]uint32{0x08, 0x1d, 0x58} {
		t.Errorf("high end = %x, want dark blue", got)
	}

	if n := len(heatPalette("NoSuchScale", 0, 1).Colors()); n != 16 {
		t.Errorf("fallback colors = %d", n)
	}
}
