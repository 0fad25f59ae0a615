package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"mes-dashboard/internal/storage"
	"mes-dashboard/internal/storage/mysql"
)

type ExportStorage interface {
	GetProductionRecords(ctx context.Context, filter mysql.RecordFilter) ([]storage.ProductionRecord, error)
}

type ReportBuilder interface {
	BuildReport(ctx context.Context, filter mysql.RecordFilter) (*storage.ReportBundle, error)
}

type Service struct {
	storage ExportStorage
	reports ReportBuilder
}

func NewService(storage ExportStorage, reports ReportBuilder) *Service {
	return &Service{storage: storage, reports: reports}
}

var recordHeaders = []string{
	"Code", "Date", "Shift", "Type", "Machine", "Product",
	"Planned Qty", "Actual Qty", "Rejected Qty", "Lumps Qty",
	"Planned Mins", "Downtime", "Downtime Type", "Defect Type",
	"Operator", "Supervisor", "Team", "Status", "Efficiency %",
}

func recordRow(rec storage.ProductionRecord) []interface{} {
	return []interface{}{
		rec.Code, rec.Date, rec.Shift, rec.ProductionType, rec.MachineName, rec.ProductName,
		rec.PlannedQty, rec.ActualQty, rec.RejectedQty, rec.LumpsQty,
		rec.PlannedMins, rec.Downtime, rec.DowntimeType, rec.DefectType,
		rec.Operator, rec.Supervisor, rec.Team, rec.Status, rec.Efficiency,
	}
}

// GenerateExcel renders the filtered records plus the report aggregates into
// one workbook: a records sheet and an OEE summary sheet.
func (s *Service) GenerateExcel(ctx context.Context, filter mysql.RecordFilter) ([]byte, error) {
	const op = "service.export.GenerateExcel"

	var (
		records []storage.ProductionRecord
		bundle  *storage.ReportBundle
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
		bundle, err = s.reports.BuildReport(gCtx, filter)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	recordsSheet := "Production"
	f.SetSheetName("Sheet1", recordsSheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	for i, name := range recordHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(recordsSheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(recordHeaders), 1)
	f.SetCellStyle(recordsSheet, "A1", lastCol, headerStyle)

	for rowIdx, rec := range records {
		for colIdx, v := range recordRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(recordsSheet, cell, v)
		}
	}

	f.SetPanes(recordsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(recordsSheet, "A", "F", 18)

	oeeSheet := "OEE"
	if _, err := f.NewSheet(oeeSheet); err != nil {
		return nil, fmt.Errorf("%s: new sheet: %w", op, err)
	}

	oeeHeaders := []string{"Machine", "Availability %", "Performance %", "Quality %", "OEE %", "Records"}
	for i, name := range oeeHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(oeeSheet, cell, name)
	}
	oeeLast, _ := excelize.CoordinatesToCellName(len(oeeHeaders), 1)
	f.SetCellStyle(oeeSheet, "A1", oeeLast, headerStyle)

	for rowIdx, row := range bundle.OEEByMachine {
		rowNum := rowIdx + 2
		f.SetCellValue(oeeSheet, cellName(1, rowNum), row.Machine)
		f.SetCellValue(oeeSheet, cellName(2, rowNum), row.Availability)
		f.SetCellValue(oeeSheet, cellName(3, rowNum), row.Performance)
		f.SetCellValue(oeeSheet, cellName(4, rowNum), row.Quality)
		f.SetCellValue(oeeSheet, cellName(5, rowNum), row.OEE)
		f.SetCellValue(oeeSheet, cellName(6, rowNum), row.Records)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
