package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	prodget "mes-dashboard/http-server/production/get"
	"mes-dashboard/internal/storage/mysql"
)

type Exporter interface {
	GenerateExcel(ctx context.Context, filter mysql.RecordFilter) ([]byte, error)
	GenerateCSV(ctx context.Context, filter mysql.RecordFilter) ([]byte, error)
}

func ExportExcel(log *slog.Logger, exporter Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reports.export.ExportExcel"

		filter, err := prodget.ParseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Excel generation walks every matching record, give it more room.
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		data, err := exporter.GenerateExcel(ctx, filter)
		if err != nil {
			log.Error("Failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Production_Report_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(data)
	}
}

func ExportCSV(log *slog.Logger, exporter Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reports.export.ExportCSV"

		filter, err := prodget.ParseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		data, err := exporter.GenerateCSV(ctx, filter)
		if err != nil {
			log.Error("Failed to generate csv", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Production_Report_%s.csv", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(data)
	}
}
