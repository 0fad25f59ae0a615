package prodentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mes-dashboard/internal/storage"
)

func validEntry() storage.ProductionRecord {
	return storage.ProductionRecord{
		ProductionType: storage.TypeInjection,
		Date:           "2024-03-15",
		Shift:          "A",
		MachineName:    "IMM-01",
		ProductName:    "Gear Housing",
		PlannedQty:     1000,
		ActualQty:      950,
		PlannedMins:    480,
		Downtime:       30,
	}
}

func TestPrepare_DerivesCodeAndEfficiency(t *testing.T) {
	rec, err := Prepare(validEntry())
	require.NoError(t, err)

	assert.Equal(t, "IMM01-GEARHOUSING-20240315-A-INJ", rec.Code)
	assert.Equal(t, 95, rec.Efficiency)
	assert.Equal(t, storage.StatusPending, rec.Status)
}

func TestPrepare_RejectedTotalRecomputed(t *testing.T) {
	entry := validEntry()
	entry.RejectedQty = 999 // client value is ignored
	entry.Rejections = []storage.RejectionEntry{
		{Type: "flash", Quantity: 30},
		{Type: "short-shot", Quantity: 20},
	}

	rec, err := Prepare(entry)
	require.NoError(t, err)
	assert.Equal(t, 50, rec.RejectedQty)

	for _, e := range rec.Rejections {
		assert.NotEmpty(t, e.EntryID)
	}
}

func TestPrepare_RejectionsExceedActual(t *testing.T) {
	entry := validEntry()
	entry.ActualQty = 40
	entry.Rejections = []storage.RejectionEntry{
		{Type: "flash", Quantity: 30},
		{Type: "short-shot", Quantity: 20},
	}

	_, err := Prepare(entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed actual quantity")
}

func TestPrepare_IncompleteActionsDiscarded(t *testing.T) {
	entry := validEntry()
	entry.Rejections = []storage.RejectionEntry{
		{
			Type:     "flash",
			Quantity: 10,
			CorrectiveActions: []storage.CorrectiveAction{
				{Action: "check mold", Responsible: "J. Smith", DueDate: "2024-03-20"},
				{Action: "half filled", Responsible: "", DueDate: ""},
			},
		},
	}
	entry.DowntimeActions = []storage.CorrectiveAction{
		{Action: "", Responsible: "A. Lee", DueDate: "2024-03-21"},
	}

	rec, err := Prepare(entry)
	require.NoError(t, err)

	require.Len(t, rec.Rejections[0].CorrectiveActions, 1)
	assert.NotEmpty(t, rec.Rejections[0].CorrectiveActions[0].ID)
	assert.Empty(t, rec.DowntimeActions)
}

func TestPrepare_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*storage.ProductionRecord)
		wantErr string
	}{
		{"missing machine", func(r *storage.ProductionRecord) { r.MachineName = "" }, "machine_name"},
		{"missing product", func(r *storage.ProductionRecord) { r.ProductName = "" }, "product_name"},
		{"bad type", func(r *storage.ProductionRecord) { r.ProductionType = "casting" }, "production_type"},
		{"bad shift", func(r *storage.ProductionRecord) { r.Shift = "D" }, "shift"},
		{"bad date", func(r *storage.ProductionRecord) { r.Date = "15.03.2024" }, "date"},
		{"negative qty", func(r *storage.ProductionRecord) { r.ActualQty = -5 }, "non-negative"},
		{"actual over planned", func(r *storage.ProductionRecord) { r.ActualQty = 1200 }, "exceeds planned"},
		{"bad status", func(r *storage.ProductionRecord) { r.Status = "archived" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(&entry)

			_, err := Prepare(entry)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrepare_KeepsClientEntryIDs(t *testing.T) {
	entry := validEntry()
	entry.Rejections = []storage.RejectionEntry{
		{EntryID: "client-id-1", Type: "flash", Quantity: 5},
	}

	rec, err := Prepare(entry)
	require.NoError(t, err)
	assert.Equal(t, "client-id-1", rec.Rejections[0].EntryID)
}
