package prodentry

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"mes-dashboard/internal/service/metrics"
	"mes-dashboard/internal/service/prodcode"
	"mes-dashboard/internal/storage"
)

// Prepare turns a raw production submission into a persistable record:
// validates the entry, discards incomplete corrective actions, assigns entry
// ids, recomputes the rejected total and fills in the derived code and
// efficiency. The returned error is always a client error.
func Prepare(rec storage.ProductionRecord) (storage.ProductionRecord, error) {
	if err := validate(rec); err != nil {
		return storage.ProductionRecord{}, err
	}

	total := 0
	for i := range rec.Rejections {
		entry := &rec.Rejections[i]
		if entry.EntryID == "" {
			entry.EntryID = uuid.NewString()
		}
		entry.CorrectiveActions = completeActions(entry.CorrectiveActions)
		total += entry.Quantity
	}
	if total > rec.ActualQty {
		return storage.ProductionRecord{}, fmt.Errorf("rejection quantities (%d) exceed actual quantity (%d)", total, rec.ActualQty)
	}
	rec.RejectedQty = total

	rec.DowntimeActions = completeActions(rec.DowntimeActions)

	if rec.Status == "" {
		rec.Status = storage.StatusPending
	}

	rec.Code = prodcode.Generate(rec.MachineName, rec.ProductName, rec.Date, rec.Shift, rec.ProductionType)
	if rec.Code == "" {
		return storage.ProductionRecord{}, fmt.Errorf("entry incomplete, cannot generate production code")
	}

	rec.Efficiency = metrics.Efficiency(rec.PlannedQty, rec.ActualQty)

	return rec, nil
}

func validate(rec storage.ProductionRecord) error {
	if rec.MachineName == "" {
		return fmt.Errorf("machine_name is required")
	}
	if rec.ProductName == "" {
		return fmt.Errorf("product_name is required")
	}
	if rec.ProductionType != storage.TypeInjection && rec.ProductionType != storage.TypeAssembly {
		return fmt.Errorf("unknown production_type: %q", rec.ProductionType)
	}
	if rec.Shift != "A" && rec.Shift != "B" && rec.Shift != "C" {
		return fmt.Errorf("unknown shift: %q", rec.Shift)
	}
	if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
		return fmt.Errorf("invalid date %q", rec.Date)
	}

	for name, v := range map[string]int{
		"planned_qty":  rec.PlannedQty,
		"actual_qty":   rec.ActualQty,
		"lumps_qty":    rec.LumpsQty,
		"planned_mins": rec.PlannedMins,
		"downtime":     rec.Downtime,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}

	if rec.ActualQty > rec.PlannedQty {
		return fmt.Errorf("actual quantity (%d) exceeds planned quantity (%d)", rec.ActualQty, rec.PlannedQty)
	}

	for i, entry := range rec.Rejections {
		if entry.Quantity < 0 {
			return fmt.Errorf("rejection %d: quantity must be non-negative", i)
		}
	}

	switch rec.Status {
	case "", storage.StatusPending, storage.StatusInProgress, storage.StatusCompleted:
	default:
		return fmt.Errorf("unknown status: %q", rec.Status)
	}

	return nil
}

// completeActions keeps only fully filled corrective actions and gives the
// kept ones an id when the client did not send one.
func completeActions(actions []storage.CorrectiveAction) []storage.CorrectiveAction {
	var kept []storage.CorrectiveAction
	for _, a := range actions {
		if !a.Complete() {
			continue
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		kept = append(kept, a)
	}
	return kept
}
