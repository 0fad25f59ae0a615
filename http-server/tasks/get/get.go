package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
)

type TaskReader interface {
	GetTasks(ctx context.Context, team string) ([]storage.Task, error)
}

type Response struct {
	Tasks  []storage.Task `json:"tasks"`
	Status string         `json:"status"`
}

// GetTasks lists tasks, optionally narrowed to one team via ?team=.
// Team-based visibility: the frontend passes the viewer's team slug.
func GetTasks(log *slog.Logger, reader TaskReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.get.GetTasks"

		team := r.URL.Query().Get("team")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		tasks, err := reader.GetTasks(ctx, team)
		if err != nil {
			log.Error("Failed to fetch tasks", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Tasks: tasks, Status: "success"})
	}
}
