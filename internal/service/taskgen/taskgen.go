package taskgen

import (
	"fmt"
	"time"

	"mes-dashboard/internal/storage"
)

// Due-date policy: a draft without a corrective-action due date falls due this
// many days after the production date.
const defaultDueDays = 3

const createdFromProduction = "production"

// Generate derives follow-up task drafts from a freshly submitted record:
// one per rejection entry that names a team, plus one downtime draft when the
// record has a real downtime type and an assigned team. Lumps are tracked on
// the record but never routed into tasks. The function is pure and never
// fails; unresolved team names pass through as-is and render as "Unknown"
// downstream.
func Generate(rec storage.ProductionRecord) []storage.TaskDraft {
	var drafts []storage.TaskDraft

	for _, entry := range rec.Rejections {
		if entry.AssignedToTeam == "" {
			continue
		}

		drafts = append(drafts, storage.TaskDraft{
			Title:          fmt.Sprintf("Rejection follow-up: %s", rec.Code),
			TaskType:       "quality",
			Priority:       rejectionPriority(entry.Quantity, rec.PlannedQty),
			AssignedTeam:   entry.AssignedToTeam,
			Description:    fmt.Sprintf("%d pcs rejected (%s): %s", entry.Quantity, entry.Type, entry.Reason),
			DueDate:        dueDate(rec.Date, entry.CorrectiveActions),
			ProductionCode: rec.Code,
			CreatedFrom:    createdFromProduction,
			RecordID:       rec.ID,
			SourceEntryID:  entry.EntryID,
		})
	}

	if rec.DowntimeType != "" && rec.DowntimeType != "none" && rec.Team != "" {
		drafts = append(drafts, storage.TaskDraft{
			Title:          fmt.Sprintf("Downtime follow-up: %s", rec.Code),
			TaskType:       "maintenance",
			Priority:       storage.PriorityMedium,
			AssignedTeam:   rec.Team,
			Description:    fmt.Sprintf("%d min downtime (%s)", rec.Downtime, downtimeLabel(rec)),
			DueDate:        dueDate(rec.Date, rec.DowntimeActions),
			ProductionCode: rec.Code,
			CreatedFrom:    createdFromProduction,
			RecordID:       rec.ID,
			SourceEntryID:  "downtime",
		})
	}

	return drafts
}

// rejectionPriority scales with the rejected share of the plan: more than 10%
// of planned quantity is treated as high.
func rejectionPriority(quantity, plannedQty int) string {
	if plannedQty > 0 && float64(quantity) > float64(plannedQty)*0.10 {
		return storage.PriorityHigh
	}
	return storage.PriorityMedium
}

// dueDate prefers the earliest due date among complete corrective actions and
// falls back to production date plus the policy offset. An unparseable
// production date leaves the fallback empty rather than failing generation.
func dueDate(productionDate string, actions []storage.CorrectiveAction) string {
	earliest := ""
	for _, a := range actions {
		if !a.Complete() {
			continue
		}
		if _, err := time.Parse("2006-01-02", a.DueDate); err != nil {
			continue
		}
		if earliest == "" || a.DueDate < earliest {
			earliest = a.DueDate
		}
	}
	if earliest != "" {
		return earliest
	}

	t, err := time.Parse("2006-01-02", productionDate)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, defaultDueDays).Format("2006-01-02")
}

func downtimeLabel(rec storage.ProductionRecord) string {
	if rec.DowntimeType == "other" && rec.DowntimeLabel != "" {
		return rec.DowntimeLabel
	}
	return rec.DowntimeType
}
