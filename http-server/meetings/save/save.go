package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"mes-dashboard/internal/storage"
)

type MeetingSaver interface {
	SaveMeeting(ctx context.Context, m storage.MeetingMinutes) (int64, error)
}

// SaveMeeting stores one set of meeting minutes. The attendees field accepts
// either a JSON array or a comma-joined string; both normalize to a list.
func SaveMeeting(log *slog.Logger, saver MeetingSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meetings.save.SaveMeeting"

		var req storage.MeetingMinutes
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Title == "" {
			http.Error(w, "Title is required", http.StatusBadRequest)
			return
		}
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveMeeting(ctx, req)
		if err != nil {
			log.Error("Failed to save meeting minutes", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Meeting minutes saved", slog.Int64("id", id), slog.String("title", req.Title))

		render.JSON(w, r, map[string]interface{}{"status": "success", "id": id})
	}
}
