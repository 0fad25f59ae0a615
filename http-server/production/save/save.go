package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-sql-driver/mysql"

	"mes-dashboard/internal/service/prodentry"
	"mes-dashboard/internal/service/taskgen"
	"mes-dashboard/internal/storage"
)

type RecordSaver interface {
	SaveProductionRecord(ctx context.Context, rec storage.ProductionRecord) (int64, error)
}

type Response struct {
	Record     storage.ProductionRecord `json:"record"`
	TaskDrafts []storage.TaskDraft      `json:"task_drafts"`
	Status     string                   `json:"status"`
}

// SaveProductionEntry validates a submitted run, derives code and efficiency,
// persists the record and returns it together with the auto-generated
// follow-up task drafts. The drafts are proposals; the frontend decides which
// to persist via the tasks endpoint.
func SaveProductionEntry(log *slog.Logger, saver RecordSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.save.SaveProductionEntry"

		var req storage.ProductionRecord
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		rec, err := prodentry.Prepare(req)
		if err != nil {
			log.Warn("Rejected production entry", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveProductionRecord(ctx, rec)
		if err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
				log.Warn("Duplicate production code", slog.String("op", op), slog.String("code", rec.Code))
				http.Error(w, "Record with this production code already exists", http.StatusConflict)
				return
			}
			log.Error("Failed to save production record", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		rec.ID = id

		drafts := taskgen.Generate(rec)
		for i := range drafts {
			drafts[i].RecordID = id
		}

		log.Info("Production record saved",
			slog.Int64("id", id),
			slog.String("code", rec.Code),
			slog.Int("task_drafts", len(drafts)),
		)

		render.JSON(w, r, Response{
			Record:     rec,
			TaskDrafts: drafts,
			Status:     "success",
		})
	}
}
