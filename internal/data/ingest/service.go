// Package ingest runs one fetch, parse and map cycle over the dive log export.
package ingest

import (
	"context"
	"errors"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
	"github.com/penwyp/go-dive-monitor/internal/data/mapper"
	"github.com/penwyp/go-dive-monitor/internal/data/parser"
	"github.com/penwyp/go-dive-monitor/internal/data/sheet"
)

// ErrEmptyDataset means the export was fetched and parsed but held no dated rows
var ErrEmptyDataset = errors.New("no dive logs found")

// Loader produces the full record collection for one ingestion cycle
type Loader interface {
	LoadLogs(ctx context.Context) ([]model.DiveLog, error)
}

// Service composes a sheet.Fetcher with the CSV parser and row mapper.
// It performs no retries and does no logging of its own.
type Service struct {
	fetcher sheet.Fetcher
}

func NewService(fetcher sheet.Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Source describes the underlying fetcher
func (s *Service) Source() string {
	return s.fetcher.Source()
}

// LoadLogs returns a non-empty, order-preserving record collection or an error.
// Fetch errors are returned unchanged; an empty result is ErrEmptyDataset.
func (s *Service) LoadLogs(ctx context.Context) ([]model.DiveLog, error) {
	text, err := s.fetcher.FetchCSV(ctx)
	if err != nil {
		return nil, err
	}

	logs := mapper.MapRows(parser.Parse(text))
	if len(logs) == 0 {
		return nil, ErrEmptyDataset
	}
	return logs, nil
}
