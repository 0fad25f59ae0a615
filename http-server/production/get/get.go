package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
	"mes-dashboard/internal/storage/mysql"
)

type RecordReader interface {
	GetProductionRecords(ctx context.Context, filter mysql.RecordFilter) ([]storage.ProductionRecord, error)
	GetProductionRecord(ctx context.Context, id int64) (*storage.ProductionRecord, error)
}

type ListResponse struct {
	Records []storage.ProductionRecord `json:"records"`
	Status  string                     `json:"status"`
	Error   string                     `json:"error,omitempty"`
}

// ParseFilter builds a RecordFilter from list/export query parameters.
// Missing dates default to the current month, matching the dashboard's
// default view.
func ParseFilter(r *http.Request) (mysql.RecordFilter, error) {
	q := r.URL.Query()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if s := q.Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return mysql.RecordFilter{}, errors.New("invalid from date")
		}
		from = t
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return mysql.RecordFilter{}, errors.New("invalid to date")
		}
		to = t
	}

	filter := mysql.RecordFilter{
		From:    from,
		To:      to,
		Machine: q.Get("machine"),
		Type:    q.Get("type"),
		Shift:   q.Get("shift"),
		Status:  q.Get("status"),
		Search:  q.Get("search"),
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return mysql.RecordFilter{}, errors.New("invalid limit")
		}
		filter.Limit = limit
	}
	if s := q.Get("offset"); s != "" {
		offset, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return mysql.RecordFilter{}, errors.New("invalid offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}

func GetProductionRecords(log *slog.Logger, reader RecordReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.GetProductionRecords"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filter, err := ParseFilter(r)
		if err != nil {
			log.Error("Invalid filter", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		records, err := reader.GetProductionRecords(ctx, filter)
		if err != nil {
			log.Error("Failed to fetch production records", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ListResponse{Error: "Failed to fetch production records"})
			return
		}

		render.JSON(w, r, ListResponse{
			Records: records,
			Status:  strconv.Itoa(http.StatusOK),
		})
	}
}

func GetProductionRecord(log *slog.Logger, reader RecordReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.production.get.GetProductionRecord"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rec, err := reader.GetProductionRecord(ctx, id)
		if err != nil {
			if errors.Is(err, mysql.ErrRecordNotFound) {
				http.Error(w, "Record not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to fetch production record", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, rec)
	}
}
