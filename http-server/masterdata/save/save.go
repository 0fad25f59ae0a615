package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
)

type MasterWriter interface {
	CreateMachine(ctx context.Context, m storage.Machine) (int64, error)
	CreateMold(ctx context.Context, m storage.Mold) (int64, error)
	CreateProduct(ctx context.Context, p storage.Product) (int64, error)
	CreateEmployee(ctx context.Context, e storage.Employee) (int64, error)
	CreateDefectType(ctx context.Context, d storage.DefectType) (int64, error)
	CreateTeam(ctx context.Context, t storage.Team) (int64, error)
}

func SaveMasterData(log *slog.Logger, writer MasterWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.masterdata.save.SaveMasterData"

		kind := chi.URLParam(r, "kind")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := create(ctx, r, writer, kind)
		if err != nil {
			if err == errUnknownKind {
				http.Error(w, "Unknown master data kind", http.StatusNotFound)
				return
			}
			if err == errBadBody {
				http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
				return
			}
			log.Error("Failed to save master data", slog.String("op", op), slog.String("kind", kind), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Master data saved", slog.String("kind", kind), slog.Int64("id", id))

		render.JSON(w, r, map[string]interface{}{"status": "success", "id": id})
	}
}

var (
	errUnknownKind = errors.New("unknown kind")
	errBadBody     = errors.New("bad body")
)

func create(ctx context.Context, r *http.Request, writer MasterWriter, kind string) (int64, error) {
	switch kind {
	case "machines":
		var m storage.Machine
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			return 0, errBadBody
		}
		return writer.CreateMachine(ctx, m)
	case "molds":
		var m storage.Mold
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			return 0, errBadBody
		}
		return writer.CreateMold(ctx, m)
	case "products":
		var p storage.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return 0, errBadBody
		}
		return writer.CreateProduct(ctx, p)
	case "employees":
		var e storage.Employee
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			return 0, errBadBody
		}
		return writer.CreateEmployee(ctx, e)
	case "defects":
		var d storage.DefectType
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			return 0, errBadBody
		}
		return writer.CreateDefectType(ctx, d)
	case "teams":
		var t storage.Team
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			return 0, errBadBody
		}
		return writer.CreateTeam(ctx, t)
	default:
		return 0, errUnknownKind
	}
}
