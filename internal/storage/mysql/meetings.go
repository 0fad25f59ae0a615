package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mes-dashboard/internal/storage"
)

func (s *Storage) GetMeetings(ctx context.Context) ([]storage.MeetingMinutes, error) {
	const op = "storage.mysql.GetMeetings"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, date, attendees, agenda, decisions, notes, created_at
		FROM meeting_minutes ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var meetings []storage.MeetingMinutes
	for rows.Next() {
		var m storage.MeetingMinutes
		var date time.Time
		var attendees string

		err := rows.Scan(&m.ID, &m.Title, &date, &attendees, &m.Agenda, &m.Decisions, &m.Notes, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		m.Date = date.Format("2006-01-02")
		if attendees != "" {
			m.Attendees = strings.Split(attendees, ",")
		}
		meetings = append(meetings, m)
	}

	return meetings, rows.Err()
}

func (s *Storage) SaveMeeting(ctx context.Context, m storage.MeetingMinutes) (int64, error) {
	const op = "storage.mysql.SaveMeeting"

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO meeting_minutes (title, date, attendees, agenda, decisions, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Title, m.Date, strings.Join(m.Attendees, ","), m.Agenda, m.Decisions, m.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) DeleteMeeting(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteMeeting"

	res, err := s.db.ExecContext(ctx, `DELETE FROM meeting_minutes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}
