package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
)

type MasterReader interface {
	GetMachines(ctx context.Context) ([]storage.Machine, error)
	GetMolds(ctx context.Context) ([]storage.Mold, error)
	GetProducts(ctx context.Context) ([]storage.Product, error)
	GetEmployees(ctx context.Context) ([]storage.Employee, error)
	GetDefectTypes(ctx context.Context) ([]storage.DefectType, error)
	GetTeams(ctx context.Context) ([]storage.Team, error)
}

// GetMasterData serves the list endpoint for every master-data kind:
// machines, molds, products, employees, defects, teams.
func GetMasterData(log *slog.Logger, reader MasterReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.masterdata.get.GetMasterData"

		kind := chi.URLParam(r, "kind")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			result interface{}
			err    error
		)

		switch kind {
		case "machines":
			result, err = reader.GetMachines(ctx)
		case "molds":
			result, err = reader.GetMolds(ctx)
		case "products":
			result, err = reader.GetProducts(ctx)
		case "employees":
			result, err = reader.GetEmployees(ctx)
		case "defects":
			result, err = reader.GetDefectTypes(ctx)
		case "teams":
			result, err = reader.GetTeams(ctx)
		default:
			http.Error(w, "Unknown master data kind", http.StatusNotFound)
			return
		}

		if err != nil {
			log.Error("Failed to fetch master data", slog.String("op", op), slog.String("kind", kind), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, result)
	}
}
