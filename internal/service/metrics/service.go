package metrics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mes-dashboard/internal/storage"
	"mes-dashboard/internal/storage/mysql"
)

type ReportStorage interface {
	GetProductionRecords(ctx context.Context, filter mysql.RecordFilter) ([]storage.ProductionRecord, error)
	GetActiveMachines(ctx context.Context) ([]storage.Machine, error)
}

type Service struct {
	storage ReportStorage
}

func NewService(storage ReportStorage) *Service {
	return &Service{storage: storage}
}

// BuildReport assembles all chart aggregates for the records matching the
// filter. Machines without a single matching record still get a zero row so
// the dashboard shows idle machines; best/worst is decided among machines
// that actually produced.
func (s *Service) BuildReport(ctx context.Context, filter mysql.RecordFilter) (*storage.ReportBundle, error) {
	const op = "service.metrics.BuildReport"

	var (
		records  []storage.ProductionRecord
		machines []storage.Machine
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.storage.GetProductionRecords(gCtx, filter)
		if err != nil {
			return fmt.Errorf("records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		machines, err = s.storage.GetActiveMachines(gCtx)
		if err != nil {
			return fmt.Errorf("machines: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	oeeRows := OEEByMachine(records)
	performers := BestWorst(oeeRows)

	seen := make(map[string]bool, len(oeeRows))
	for _, row := range oeeRows {
		seen[row.Machine] = true
	}
	for _, m := range machines {
		if !seen[m.Name] {
			oeeRows = append(oeeRows, storage.OEERow{Machine: m.Name})
		}
	}

	return &storage.ReportBundle{
		OEEByMachine:       oeeRows,
		DowntimeByCategory: DowntimeByCategory(records),
		RejectionByDefect:  RejectionByDefect(records),
		TrendByMonth:       TrendByMonth(records),
		Performers:         performers,
	}, nil
}
