package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"mes-dashboard/internal/storage/mysql"
)

type RecordDeleter interface {
	DeleteProductionRecord(ctx context.Context, id int64) error
}

func DeleteProductionRecord(log *slog.Logger, deleter RecordDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.delete.DeleteProductionRecord"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteProductionRecord(ctx, id); err != nil {
			if errors.Is(err, mysql.ErrRecordNotFound) {
				http.Error(w, "Record not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to delete production record", slog.String("op", op), slog.Int64("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Production record deleted", slog.Int64("id", id))

		render.JSON(w, r, map[string]interface{}{"status": "success", "deleted": id})
	}
}
