package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mes-dashboard/internal/storage"
	"mes-dashboard/internal/storage/mysql"
)

type MockExportStorage struct {
	mock.Mock
}

func (m *MockExportStorage) GetProductionRecords(ctx context.Context, filter mysql.RecordFilter) ([]storage.ProductionRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ProductionRecord), args.Error(1)
}

type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) BuildReport(ctx context.Context, filter mysql.RecordFilter) (*storage.ReportBundle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ReportBundle), args.Error(1)
}

func sampleRecords() []storage.ProductionRecord {
	return []storage.ProductionRecord{
		{
			Code: "IMM01-GEAR-20240315-A-INJ", Date: "2024-03-15", Shift: "A",
			ProductionType: storage.TypeInjection, MachineName: "IMM-01", ProductName: "Gear",
			PlannedQty: 1000, ActualQty: 950, RejectedQty: 50,
			PlannedMins: 480, Downtime: 30, Status: storage.StatusCompleted, Efficiency: 95,
		},
		{
			Code: "IMM02-COVER-20240315-B-INJ", Date: "2024-03-15", Shift: "B",
			ProductionType: storage.TypeInjection, MachineName: "IMM-02", ProductName: "Cover",
			PlannedQty: 800, ActualQty: 700, Status: storage.StatusPending, Efficiency: 88,
		},
	}
}

func sampleBundle() *storage.ReportBundle {
	return &storage.ReportBundle{
		OEEByMachine: []storage.OEERow{
			{Machine: "IMM-01", Availability: 93.8, Performance: 100, Quality: 90, OEE: 84.4, Records: 1},
		},
	}
}

func TestGenerateExcel(t *testing.T) {
	mockStorage := new(MockExportStorage)
	mockStorage.On("GetProductionRecords", mock.Anything, mock.Anything).Return(sampleRecords(), nil)

	mockReports := new(MockReportBuilder)
	mockReports.On("BuildReport", mock.Anything, mock.Anything).Return(sampleBundle(), nil)

	service := NewService(mockStorage, mockReports)

	data, err := service.GenerateExcel(context.Background(), mysql.RecordFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Production", "OEE"}, f.GetSheetList())

	code, err := f.GetCellValue("Production", "A2")
	require.NoError(t, err)
	assert.Equal(t, "IMM01-GEAR-20240315-A-INJ", code)

	header, err := f.GetCellValue("Production", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Code", header)

	machine, err := f.GetCellValue("OEE", "A2")
	require.NoError(t, err)
	assert.Equal(t, "IMM-01", machine)

	oee, err := f.GetCellValue("OEE", "E2")
	require.NoError(t, err)
	assert.Equal(t, "84.4", oee)
}

func TestGenerateExcel_StorageError(t *testing.T) {
	mockStorage := new(MockExportStorage)
	mockStorage.On("GetProductionRecords", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	mockReports := new(MockReportBuilder)
	mockReports.On("BuildReport", mock.Anything, mock.Anything).Return(sampleBundle(), nil).Maybe()

	service := NewService(mockStorage, mockReports)

	_, err := service.GenerateExcel(context.Background(), mysql.RecordFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestGenerateCSV(t *testing.T) {
	mockStorage := new(MockExportStorage)
	mockStorage.On("GetProductionRecords", mock.Anything, mock.Anything).Return(sampleRecords(), nil)

	service := NewService(mockStorage, new(MockReportBuilder))

	data, err := service.GenerateCSV(context.Background(), mysql.RecordFilter{})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, recordHeaders, rows[0])
	assert.Equal(t, "IMM01-GEAR-20240315-A-INJ", rows[1][0])
	assert.Equal(t, "95", rows[1][18])
	assert.Equal(t, "IMM02-COVER-20240315-B-INJ", rows[2][0])
}
