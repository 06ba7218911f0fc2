// Package insights serves chart specs, chart images and dataset views over one
// prepared table, with an optional Redis cache in front of chart rendering.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/jmehdipour/credit-insights/internal/breaker"
	"github.com/jmehdipour/credit-insights/internal/chart"
	"github.com/jmehdipour/credit-insights/internal/chartpng"
	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/internal/metrics"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmehdipour/credit-insights/internal/repository"
	"go.uber.org/zap"
)

const (
	DefaultPreviewRows = 50
	MaxPreviewRows     = 1000
)

type Service struct {
	table *dataset.Table
	image chartpng.Options

	cache   repository.ChartCacheRepository
	breaker *breaker.Breaker
	ttl     time.Duration

	summaryOnce sync.Once
	summary     []dataset.ColumnSummary
}

type Option func(*Service)

// WithCache puts cache in front of chart rendering. Cache calls go through b.
func WithCache(cache repository.ChartCacheRepository, b *breaker.Breaker, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.breaker = b
		s.ttl = ttl
	}
}

// WithImageSize sets the default PNG size used when a request leaves it out.
func WithImageSize(opt chartpng.Options) Option {
	return func(s *Service) { s.image = opt }
}

func New(t *dataset.Table, opts ...Option) *Service {
	s := &Service{table: t, image: chartpng.DefaultOptions()}
	for _, o := range opts {
		o(s)
	}
	if s.cache != nil && s.breaker == nil {
		s.breaker = breaker.New(3, 30*time.Second)
	}
	metrics.DatasetRecords.Set(float64(t.Len()))
	return s
}

func (s *Service) Table() *dataset.Table { return s.table }

type ChartInfo struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Charts lists the menu in display order.
func (s *Service) Charts() []ChartInfo {
	kinds := model.AllChartKinds()
	out := make([]ChartInfo, len(kinds))
	for i, k := range kinds {
		out[i] = ChartInfo{Slug: k.Slug(), Title: k.Title()}
	}
	return out
}

// Chart returns the spec for kind, from cache when possible. Cache failures
// are logged and never fail the call.
func (s *Service) Chart(ctx context.Context, kind model.ChartKind) (model.ChartSpec, error) {
	if !kind.Valid() {
		return model.ChartSpec{}, &chart.UnknownChartError{Kind: strconv.Itoa(int(kind))}
	}
	slug := kind.Slug()
	key := s.cacheKey(kind)

	if spec, ok := s.cached(ctx, key); ok {
		return spec, nil
	}

	start := time.Now()
	spec, err := chart.Render(kind, s.table)
	metrics.ChartRenderSeconds.WithLabelValues(slug).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChartRenders.WithLabelValues(slug, "error").Inc()
		return model.ChartSpec{}, err
	}
	metrics.ChartRenders.WithLabelValues(slug, "ok").Inc()

	s.store(ctx, key, spec)
	return spec, nil
}

// ChartByName accepts a slug or a display title.
func (s *Service) ChartByName(ctx context.Context, name string) (model.ChartSpec, error) {
	kind, ok := model.ParseChartKind(name)
	if !ok {
		return model.ChartSpec{}, &chart.UnknownChartError{Kind: name}
	}
	return s.Chart(ctx, kind)
}

// Image renders kind as PNG. Zero sizes in opt fall back to the service default.
func (s *Service) Image(ctx context.Context, kind model.ChartKind, opt chartpng.Options) ([]byte, error) {
	spec, err := s.Chart(ctx, kind)
	if err != nil {
		return nil, err
	}
	if opt.Width <= 0 {
		opt.Width = s.image.Width
	}
	if opt.Height <= 0 {
		opt.Height = s.image.Height
	}
	return chartpng.Render(spec, opt)
}

type Preview struct {
	Source  string     `json:"source"`
	Total   int        `json:"total"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Preview returns the first n prepared records. n <= 0 means DefaultPreviewRows.
func (s *Service) Preview(n int) Preview {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	if n > MaxPreviewRows {
		n = MaxPreviewRows
	}
	return Preview{
		Source:  s.table.Source(),
		Total:   s.table.Len(),
		Columns: dataset.PreviewColumns(),
		Rows:    dataset.PreviewRows(s.table.Head(n)),
	}
}

// Summary is computed once; the table never changes.
func (s *Service) Summary() []dataset.ColumnSummary {
	s.summaryOnce.Do(func() {
		s.summary = dataset.Describe(s.table)
	})
	return s.summary
}

func (s *Service) cacheKey(kind model.ChartKind) string {
	return strconv.FormatUint(s.table.Fingerprint(), 16) + ":" + kind.Slug()
}

func (s *Service) cached(ctx context.Context, key string) (model.ChartSpec, bool) {
	if s.cache == nil {
		return model.ChartSpec{}, false
	}

	var raw []byte
	var hit bool
	err := s.breaker.Do(func() error {
		var err error
		raw, hit, err = s.cache.Get(ctx, key)
		return err
	})
	switch {
	case errors.Is(err, breaker.ErrOpen):
		metrics.ChartCache.WithLabelValues("skipped").Inc()
		return model.ChartSpec{}, false
	case err != nil:
		metrics.ChartCache.WithLabelValues("error").Inc()
		logger.Log.Warn("chart cache get failed", zap.String("key", key), zap.Error(err))
		return model.ChartSpec{}, false
	case !hit:
		metrics.ChartCache.WithLabelValues("miss").Inc()
		return model.ChartSpec{}, false
	}

	var spec model.ChartSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		metrics.ChartCache.WithLabelValues("error").Inc()
		logger.Log.Warn("chart cache entry unreadable", zap.String("key", key), zap.Error(err))
		return model.ChartSpec{}, false
	}
	metrics.ChartCache.WithLabelValues("hit").Inc()
	return spec, true
}

func (s *Service) store(ctx context.Context, key string, spec model.ChartSpec) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		logger.Log.Warn("chart spec not cacheable", zap.String("key", key), zap.Error(err))
		return
	}
	err = s.breaker.Do(func() error {
		return s.cache.Set(ctx, key, raw, s.ttl)
	})
	if err != nil && !errors.Is(err, breaker.ErrOpen) {
		logger.Log.Warn("chart cache set failed", zap.String("key", key), zap.Error(err))
	}
}
