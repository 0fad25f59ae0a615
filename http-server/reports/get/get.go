package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	prodget "mes-dashboard/http-server/production/get"
	"mes-dashboard/internal/storage"
	"mes-dashboard/internal/storage/mysql"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context, filter mysql.RecordFilter) (*storage.ReportBundle, error)
}

// GetReport serves the aggregate endpoints. Section "" returns the whole
// bundle; "oee", "downtime", "rejections" and "trend" return one array each.
func GetReport(log *slog.Logger, builder ReportBuilder, section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reports.get.GetReport"

		filter, err := prodget.ParseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		bundle, err := builder.BuildReport(ctx, filter)
		if err != nil {
			log.Error("Failed to build report", slog.String("op", op), slog.String("section", section), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		switch section {
		case "oee":
			render.JSON(w, r, bundle.OEEByMachine)
		case "downtime":
			render.JSON(w, r, bundle.DowntimeByCategory)
		case "rejections":
			render.JSON(w, r, bundle.RejectionByDefect)
		case "trend":
			render.JSON(w, r, bundle.TrendByMonth)
		case "summary":
			render.JSON(w, r, bundle.Performers)
		default:
			render.JSON(w, r, bundle)
		}
	}
}
