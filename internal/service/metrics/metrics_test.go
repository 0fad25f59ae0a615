package metrics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mes-dashboard/internal/storage"
)

func TestEfficiency(t *testing.T) {
	tests := []struct {
		name    string
		planned int
		actual  int
		want    int
	}{
		{"normal", 1000, 950, 95},
		{"exact", 1000, 1000, 100},
		{"over-production clamps to 100", 1000, 1200, 100},
		{"zero planned", 0, 100, 0},
		{"zero actual", 500, 0, 0},
		{"rounding", 3, 2, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Efficiency(tt.planned, tt.actual))
		})
	}
}

func TestRecordOEE_Example(t *testing.T) {
	// 480 planned minutes, 30 downtime, 1000 planned, 950 actual, 50 rejected.
	rec := storage.ProductionRecord{
		MachineName: "M1",
		PlannedMins: 480,
		Downtime:    30,
		PlannedQty:  1000,
		ActualQty:   950,
		RejectedQty: 50,
	}

	a, p, q, oee := RecordOEE(rec)
	assert.InDelta(t, 0.9375, a, 1e-9)
	assert.InDelta(t, 1.0, p, 1e-9)
	assert.InDelta(t, 0.9, q, 1e-9)
	assert.InDelta(t, 0.84375, oee, 1e-9)

	rows := OEEByMachine([]storage.ProductionRecord{rec})
	require.Len(t, rows, 1)
	assert.Equal(t, 93.8, rows[0].Availability)
	assert.Equal(t, 100.0, rows[0].Performance)
	assert.Equal(t, 90.0, rows[0].Quality)
	assert.Equal(t, 84.4, rows[0].OEE)
}

func TestRecordOEE_ZeroGuards(t *testing.T) {
	a, p, q, oee := RecordOEE(storage.ProductionRecord{})
	assert.Zero(t, a)
	assert.Zero(t, p)
	assert.Zero(t, q)
	assert.Zero(t, oee)

	// plannedMins = 0 with production still yields availability 0, oee 0
	_, _, _, oee = RecordOEE(storage.ProductionRecord{PlannedQty: 100, ActualQty: 100})
	assert.Zero(t, oee)
}

func TestDowntimeByCategory_Example(t *testing.T) {
	records := []storage.ProductionRecord{
		{DowntimeType: "machine-breakdown", Downtime: 20},
		{DowntimeType: "material-shortage", Downtime: 10},
	}

	rows := DowntimeByCategory(records)
	require.Len(t, rows, 2)
	assert.Equal(t, storage.DowntimeRow{Category: "machine-breakdown", Minutes: 20, Percentage: 66.7}, rows[0])
	assert.Equal(t, storage.DowntimeRow{Category: "material-shortage", Minutes: 10, Percentage: 33.3}, rows[1])
}

func TestDowntimeByCategory_OtherBucketAndZeroTotal(t *testing.T) {
	rows := DowntimeByCategory([]storage.ProductionRecord{
		{DowntimeType: "", Downtime: 0},
		{DowntimeType: "tool-change", Downtime: 0},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Other", rows[0].Category)
	for _, row := range rows {
		assert.Zero(t, row.Percentage)
	}
}

func TestDowntimeByCategory_Additivity(t *testing.T) {
	records := []storage.ProductionRecord{
		{DowntimeType: "a", Downtime: 13},
		{DowntimeType: "b", Downtime: 7},
		{DowntimeType: "a", Downtime: 5},
		{Downtime: 11},
	}

	rows := DowntimeByCategory(records)

	total := 0
	for _, row := range rows {
		total += row.Minutes
	}
	assert.Equal(t, 13+7+5+11, total)
}

func TestRejectionByDefect_PercentageClosure(t *testing.T) {
	records := []storage.ProductionRecord{
		{DefectType: "flash", RejectedQty: 3},
		{DefectType: "short-shot", RejectedQty: 5},
		{DefectType: "sink-mark", RejectedQty: 7},
	}

	rows := RejectionByDefect(records)
	require.Len(t, rows, 3)

	sum := 0.0
	for _, row := range rows {
		sum += row.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.1*float64(len(rows)))
}

func TestAggregates_OrderIndependent(t *testing.T) {
	records := []storage.ProductionRecord{
		{MachineName: "M1", DowntimeType: "a", DefectType: "x", Downtime: 20, RejectedQty: 4, PlannedMins: 480, PlannedQty: 100, ActualQty: 90},
		{MachineName: "M2", DowntimeType: "b", DefectType: "y", Downtime: 10, RejectedQty: 6, PlannedMins: 480, PlannedQty: 100, ActualQty: 80},
		{MachineName: "M1", DowntimeType: "a", DefectType: "x", Downtime: 5, RejectedQty: 2, PlannedMins: 480, PlannedQty: 100, ActualQty: 95},
	}

	shuffled := make([]storage.ProductionRecord, len(records))
	copy(shuffled, records)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	sums := func(rows []storage.DowntimeRow) map[string]int {
		m := make(map[string]int)
		for _, row := range rows {
			m[row.Category] = row.Minutes
		}
		return m
	}
	assert.Equal(t, sums(DowntimeByCategory(records)), sums(DowntimeByCategory(shuffled)))

	rejections := func(rows []storage.RejectionRow) map[string]int {
		m := make(map[string]int)
		for _, row := range rows {
			m[row.Defect] = row.Quantity
		}
		return m
	}
	assert.Equal(t, rejections(RejectionByDefect(records)), rejections(RejectionByDefect(shuffled)))
}

func TestTrendByMonth(t *testing.T) {
	records := []storage.ProductionRecord{
		{Date: "2024-01-10", RejectedQty: 10, Downtime: 30, PlannedMins: 480, PlannedQty: 100, ActualQty: 100},
		{Date: "2024-01-20", RejectedQty: 20, Downtime: 10, PlannedMins: 480, PlannedQty: 100, ActualQty: 100},
		{Date: "2024-02-05", RejectedQty: 5, Downtime: 60, PlannedMins: 480, PlannedQty: 100, ActualQty: 100},
		{Date: "not-a-date", RejectedQty: 99},
	}

	rows := TrendByMonth(records)
	require.Len(t, rows, 2)

	assert.Equal(t, "Jan", rows[0].Month)
	assert.Equal(t, 15.0, rows[0].AvgRejected)
	assert.Equal(t, 20.0, rows[0].AvgDowntime)

	assert.Equal(t, "Feb", rows[1].Month)
	assert.Equal(t, 5.0, rows[1].AvgRejected)
	assert.Equal(t, 60.0, rows[1].AvgDowntime)
}

func TestBestWorst(t *testing.T) {
	rows := []storage.OEERow{
		{Machine: "M1", OEE: 80.0},
		{Machine: "M2", OEE: 92.5},
		{Machine: "M3", OEE: 61.1},
	}

	summary := BestWorst(rows)
	require.NotNil(t, summary.Best)
	require.NotNil(t, summary.Worst)
	assert.Equal(t, "M2", summary.Best.Machine)
	assert.Equal(t, "M3", summary.Worst.Machine)
}

func TestBestWorst_TieKeepsFirst(t *testing.T) {
	rows := []storage.OEERow{
		{Machine: "M1", OEE: 75.0},
		{Machine: "M2", OEE: 75.0},
	}

	summary := BestWorst(rows)
	assert.Equal(t, "M1", summary.Best.Machine)
	assert.Equal(t, "M1", summary.Worst.Machine)
}

func TestBestWorst_Empty(t *testing.T) {
	summary := BestWorst(nil)
	assert.Nil(t, summary.Best)
	assert.Nil(t, summary.Worst)
}
