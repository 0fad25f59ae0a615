package storage

import (
	"encoding/json"
	"strings"
	"time"
)

// AttendeeList tolerates both wire shapes the frontend has historically sent:
// a JSON array of names or a single comma-joined string.
type AttendeeList []string

func (a *AttendeeList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*a = normalizeNames(names)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*a = normalizeNames(strings.Split(joined, ","))
	return nil
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

type MeetingMinutes struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Date      string       `json:"date"`
	Attendees AttendeeList `json:"attendees"`
	Agenda    string       `json:"agenda"`
	Decisions string       `json:"decisions"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
