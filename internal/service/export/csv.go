package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"mes-dashboard/internal/storage/mysql"
)

// GenerateCSV renders the filtered records as CSV, same columns as the Excel
// records sheet.
func (s *Service) GenerateCSV(ctx context.Context, filter mysql.RecordFilter) ([]byte, error) {
	const op = "service.export.GenerateCSV"

	records, err := s.storage.GetProductionRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(recordHeaders); err != nil {
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}

	for _, rec := range records {
		row := make([]string, 0, len(recordHeaders))
		for _, v := range recordRow(rec) {
			row = append(row, fmt.Sprint(v))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("%s: row: %w", op, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%s: flush: %w", op, err)
	}

	return buf.Bytes(), nil
}
