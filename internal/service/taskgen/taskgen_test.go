package taskgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mes-dashboard/internal/storage"
)

func baseRecord() storage.ProductionRecord {
	return storage.ProductionRecord{
		ID:          7,
		Code:        "IMM01-GEAR-20240315-A-INJ",
		Date:        "2024-03-15",
		PlannedQty:  1000,
		ActualQty:   900,
		MachineName: "IMM-01",
		ProductName: "Gear",
	}
}

func TestGenerate_NoTriggersNoDrafts(t *testing.T) {
	rec := baseRecord()
	assert.Empty(t, Generate(rec))
}

func TestGenerate_RejectionDraftPerAssignedEntry(t *testing.T) {
	rec := baseRecord()
	rec.Rejections = []storage.RejectionEntry{
		{EntryID: "e1", Type: "flash", Quantity: 50, Reason: "mold wear", AssignedToTeam: "quality"},
		{EntryID: "e2", Type: "short-shot", Quantity: 30, Reason: "low pressure"}, // no team, no task
		{EntryID: "e3", Type: "sink-mark", Quantity: 150, Reason: "cooling", AssignedToTeam: "tooling"},
	}

	drafts := Generate(rec)
	require.Len(t, drafts, 2)

	first := drafts[0]
	assert.Equal(t, "quality", first.AssignedTeam)
	assert.Equal(t, storage.PriorityMedium, first.Priority) // 50/1000 = 5%
	assert.Contains(t, first.Description, "mold wear")
	assert.Contains(t, first.Description, "50")
	assert.Equal(t, rec.Code, first.ProductionCode)
	assert.Equal(t, "production", first.CreatedFrom)
	assert.Equal(t, int64(7), first.RecordID)
	assert.Equal(t, "e1", first.SourceEntryID)
	assert.Equal(t, "2024-03-18", first.DueDate) // production date + 3 days

	second := drafts[1]
	assert.Equal(t, storage.PriorityHigh, second.Priority) // 150/1000 = 15%
	assert.Equal(t, "e3", second.SourceEntryID)
}

func TestGenerate_DueDateFromEarliestCorrectiveAction(t *testing.T) {
	rec := baseRecord()
	rec.Rejections = []storage.RejectionEntry{
		{
			EntryID:        "e1",
			Quantity:       10,
			AssignedToTeam: "quality",
			CorrectiveActions: []storage.CorrectiveAction{
				{Action: "check mold", Responsible: "J. Smith", DueDate: "2024-03-20"},
				{Action: "adjust pressure", Responsible: "A. Lee", DueDate: "2024-03-17"},
				{Action: "incomplete, ignored", Responsible: "", DueDate: "2024-03-01"},
			},
		},
	}

	drafts := Generate(rec)
	require.Len(t, drafts, 1)
	assert.Equal(t, "2024-03-17", drafts[0].DueDate)
}

func TestGenerate_DowntimeDraft(t *testing.T) {
	rec := baseRecord()
	rec.Team = "maintenance"
	rec.DowntimeType = "machine-breakdown"
	rec.Downtime = 45

	drafts := Generate(rec)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	assert.Equal(t, "maintenance", draft.AssignedTeam)
	assert.Equal(t, "maintenance", draft.TaskType)
	assert.Contains(t, draft.Description, "45 min")
	assert.Contains(t, draft.Description, "machine-breakdown")
	assert.Equal(t, "downtime", draft.SourceEntryID)
}

func TestGenerate_DowntimeDraftSkipped(t *testing.T) {
	// no team assigned
	rec := baseRecord()
	rec.DowntimeType = "machine-breakdown"
	assert.Empty(t, Generate(rec))

	// downtime type "none"
	rec = baseRecord()
	rec.Team = "maintenance"
	rec.DowntimeType = "none"
	assert.Empty(t, Generate(rec))
}

func TestGenerate_DowntimeCustomLabel(t *testing.T) {
	rec := baseRecord()
	rec.Team = "maintenance"
	rec.DowntimeType = "other"
	rec.DowntimeLabel = "power outage"
	rec.Downtime = 30

	drafts := Generate(rec)
	require.Len(t, drafts, 1)
	assert.Contains(t, drafts[0].Description, "power outage")
}

func TestGenerate_LumpsNeverGenerateTasks(t *testing.T) {
	rec := baseRecord()
	rec.LumpsQty = 500
	rec.LumpsReason = "startup purge"

	assert.Empty(t, Generate(rec))
}

func TestGenerate_UnparseableDateLeavesDueDateEmpty(t *testing.T) {
	rec := baseRecord()
	rec.Date = "garbage"
	rec.Rejections = []storage.RejectionEntry{
		{EntryID: "e1", Quantity: 10, AssignedToTeam: "quality"},
	}

	drafts := Generate(rec)
	require.Len(t, drafts, 1)
	assert.Empty(t, drafts[0].DueDate)
}

func TestGenerate_PriorityBoundary(t *testing.T) {
	rec := baseRecord()
	rec.PlannedQty = 1000
	rec.Rejections = []storage.RejectionEntry{
		{EntryID: "e1", Quantity: 100, AssignedToTeam: "q"}, // exactly 10%, not over
		{EntryID: "e2", Quantity: 101, AssignedToTeam: "q"},
	}

	drafts := Generate(rec)
	require.Len(t, drafts, 2)
	assert.Equal(t, storage.PriorityMedium, drafts[0].Priority)
	assert.Equal(t, storage.PriorityHigh, drafts[1].Priority)
}
