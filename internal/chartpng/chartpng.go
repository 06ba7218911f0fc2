// Package chartpng draws chart specs as PNG images. Pie, single-series bar
// and line charts go through go-chart; box plots, stacked bars and heatmaps
// through gonum/plot.
package chartpng

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jmehdipour/credit-insights/internal/model"
)

var (
	ErrEmptyChart  = errors.New("chart has no data")
	ErrUnsupported = errors.New("unsupported chart type")
)

// Options sets the output size in pixels.
type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 900, Height: 540}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Render encodes spec as PNG.
func Render(spec model.ChartSpec, opt Options) ([]byte, error) {
	opt = opt.withDefaults()
	switch spec.Type {
	case model.ChartTypePie:
		return renderPie(spec, opt)
	case model.ChartTypeBar:
		if len(spec.Series) > 1 {
			return renderStackedBar(spec, opt)
		}
		return renderBar(spec, opt)
	case model.ChartTypeLine:
		return renderLine(spec, opt)
	case model.ChartTypeBox:
		return renderBox(spec, opt)
	case model.ChartTypeHeatmap:
		return renderHeatmap(spec, opt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, spec.Type)
	}
}

func seriesColor(spec model.ChartSpec, i int) string {
	if len(spec.Colors) == 0 {
		return "#4F46E5"
	}
	return spec.Colors[i%len(spec.Colors)]
}

// parseHex reads "#RRGGBB"; anything else is mid gray.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
