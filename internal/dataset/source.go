package dataset

import (
	"context"
	"os"

	"github.com/jmehdipour/credit-insights/internal/model"
)

// Source yields raw, unprepared records.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]model.CustomerRecord, error)
}

// FileSource reads a (gzip-compressed) CSV file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Records(ctx context.Context) ([]model.CustomerRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}

// RecordLister is the read side of the warehouse records repository.
type RecordLister interface {
	ListAll(ctx context.Context) ([]model.CustomerRecord, error)
}

// WarehouseSource reads records previously imported with `seed`.
type WarehouseSource struct {
	Repo  RecordLister
	Label string // e.g. "clickhouse:customer_records"
}

func (s WarehouseSource) Name() string {
	if s.Label == "" {
		return "warehouse"
	}
	return s.Label
}

func (s WarehouseSource) Records(ctx context.Context) ([]model.CustomerRecord, error) {
	return s.Repo.ListAll(ctx)
}
