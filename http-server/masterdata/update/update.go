package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
)

type MasterUpdater interface {
	UpdateMachine(ctx context.Context, m storage.Machine) error
	UpdateMold(ctx context.Context, m storage.Mold) error
	UpdateProduct(ctx context.Context, p storage.Product) error
	UpdateEmployee(ctx context.Context, e storage.Employee) error
	UpdateDefectType(ctx context.Context, d storage.DefectType) error
	UpdateTeam(ctx context.Context, t storage.Team) error
}

var (
	errUnknownKind = errors.New("unknown kind")
	errBadBody     = errors.New("bad body")
)

func UpdateMasterData(log *slog.Logger, updater MasterUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.masterdata.update.UpdateMasterData"

		kind := chi.URLParam(r, "kind")
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := update(ctx, r, updater, kind, id); err != nil {
			if errors.Is(err, errUnknownKind) {
				http.Error(w, "Unknown master data kind", http.StatusNotFound)
				return
			}
			if errors.Is(err, errBadBody) {
				http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
				return
			}
			log.Error("Failed to update master data", slog.String("op", op), slog.String("kind", kind), slog.Int64("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Master data updated", slog.String("kind", kind), slog.Int64("id", id))

		render.JSON(w, r, map[string]interface{}{"status": "success", "id": id})
	}
}

func update(ctx context.Context, r *http.Request, updater MasterUpdater, kind string, id int64) error {
	switch kind {
	case "machines":
		var m storage.Machine
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			return errBadBody
		}
		m.ID = id
		return updater.UpdateMachine(ctx, m)
	case "molds":
		var m storage.Mold
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			return errBadBody
		}
		m.ID = id
		return updater.UpdateMold(ctx, m)
	case "products":
		var p storage.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return errBadBody
		}
		p.ID = id
		return updater.UpdateProduct(ctx, p)
	case "employees":
		var e storage.Employee
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			return errBadBody
		}
		e.ID = id
		return updater.UpdateEmployee(ctx, e)
	case "defects":
		var d storage.DefectType
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			return errBadBody
		}
		d.ID = id
		return updater.UpdateDefectType(ctx, d)
	case "teams":
		var t storage.Team
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			return errBadBody
		}
		t.ID = id
		return updater.UpdateTeam(ctx, t)
	default:
		return errUnknownKind
	}
}
