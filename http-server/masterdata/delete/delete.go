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

type MasterDeleter interface {
	DeleteMachine(ctx context.Context, id int64) error
	DeleteMold(ctx context.Context, id int64) error
	DeleteProduct(ctx context.Context, id int64) error
	DeleteEmployee(ctx context.Context, id int64) error
	DeleteDefectType(ctx context.Context, id int64) error
	DeleteTeam(ctx context.Context, id int64) error
}

func DeleteMasterData(log *slog.Logger, deleter MasterDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.masterdata.delete.DeleteMasterData"

		kind := chi.URLParam(r, "kind")
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		switch kind {
		case "machines":
			err = deleter.DeleteMachine(ctx, id)
		case "molds":
			err = deleter.DeleteMold(ctx, id)
		case "products":
			err = deleter.DeleteProduct(ctx, id)
		case "employees":
			err = deleter.DeleteEmployee(ctx, id)
		case "defects":
			err = deleter.DeleteDefectType(ctx, id)
		case "teams":
			err = deleter.DeleteTeam(ctx, id)
		default:
			http.Error(w, "Unknown master data kind", http.StatusNotFound)
			return
		}

		if err != nil {
			if errors.Is(err, mysql.ErrNotFound) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to delete master data", slog.String("op", op), slog.String("kind", kind), slog.Int64("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Master data deleted", slog.String("kind", kind), slog.Int64("id", id))

		render.JSON(w, r, map[string]interface{}{"status": "success", "deleted": id})
	}
}
