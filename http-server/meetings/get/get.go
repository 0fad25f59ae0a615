package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
)

type MeetingReader interface {
	GetMeetings(ctx context.Context) ([]storage.MeetingMinutes, error)
}

func GetMeetings(log *slog.Logger, reader MeetingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.get.GetMeetings"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		meetings, err := reader.GetMeetings(ctx)
		if err != nil {
			log.Error("Failed to fetch meeting minutes", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, meetings)
	}
}
