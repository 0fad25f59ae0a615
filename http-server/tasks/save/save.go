package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
)

type TaskSaver interface {
	SaveTask(ctx context.Context, draft storage.TaskDraft) (int64, error)
}

// SaveTasks persists a batch of task drafts, both manual tasks and drafts
// accepted from a production submission. Auto-generated drafts are
// deduplicated by the store on their (record_id, source_entry_id) key, so
// re-submitting the same batch is safe.
func SaveTasks(log *slog.Logger, saver TaskSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.save.SaveTasks"

		var drafts []storage.TaskDraft
		if err := json.NewDecoder(r.Body).Decode(&drafts); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if len(drafts) == 0 {
			http.Error(w, "No tasks provided", http.StatusBadRequest)
			return
		}

		for i, d := range drafts {
			if d.Title == "" {
				log.Warn("Task without title", slog.String("op", op), slog.Int("index", i))
				http.Error(w, "Task title is required", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ids := make([]int64, 0, len(drafts))
		for _, d := range drafts {
			id, err := saver.SaveTask(ctx, d)
			if err != nil {
				log.Error("Failed to save task", slog.String("op", op), slog.String("title", d.Title), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			ids = append(ids, id)
		}

		log.Info("Tasks saved", slog.Int("count", len(ids)))

		render.JSON(w, r, map[string]interface{}{"status": "success", "ids": ids})
	}
}
