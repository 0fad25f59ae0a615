package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"mes-dashboard/internal/storage"
)

func (s *Storage) GetTasks(ctx context.Context, team string) ([]storage.Task, error) {
	const op = "storage.mysql.GetTasks"

	query := `SELECT id, title, task_type, priority, assigned_team, description, due_date,
		production_code, created_from, record_id, source_entry_id, status, created_at
		FROM tasks`
	var args []interface{}

	if team != "" {
		query += ` WHERE assigned_team = ?`
		args = append(args, team)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tasks []storage.Task
	for rows.Next() {
		var t storage.Task
		var recordID sql.NullInt64
		var entryID sql.NullString

		err := rows.Scan(&t.ID, &t.Title, &t.TaskType, &t.Priority, &t.AssignedTeam, &t.Description,
			&t.DueDate, &t.ProductionCode, &t.CreatedFrom, &recordID, &entryID, &t.Status, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		t.RecordID = recordID.Int64
		t.SourceEntryID = entryID.String
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// SaveTask persists a draft. Auto-generated drafts carry a (record_id,
// source_entry_id) key; re-submitting the same draft updates the existing
// task instead of duplicating it.
func (s *Storage) SaveTask(ctx context.Context, draft storage.TaskDraft) (int64, error) {
	const op = "storage.mysql.SaveTask"

	var recordID sql.NullInt64
	var entryID sql.NullString
	if draft.RecordID != 0 && draft.SourceEntryID != "" {
		recordID = sql.NullInt64{Int64: draft.RecordID, Valid: true}
		entryID = sql.NullString{String: draft.SourceEntryID, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks
		(title, task_type, priority, assigned_team, description, due_date,
		 production_code, created_from, record_id, source_entry_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			title = VALUES(title),
			priority = VALUES(priority),
			description = VALUES(description),
			due_date = VALUES(due_date)`,
		draft.Title, draft.TaskType, draft.Priority, draft.AssignedTeam, draft.Description,
		draft.DueDate, draft.ProductionCode, draft.CreatedFrom, recordID, entryID,
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

func (s *Storage) UpdateTask(ctx context.Context, id int64, upd storage.UpdateTask) error {
	const op = "storage.mysql.UpdateTask"

	_, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			status = COALESCE(NULLIF(?, ''), status),
			priority = COALESCE(NULLIF(?, ''), priority),
			due_date = COALESCE(NULLIF(?, ''), due_date)
		WHERE id = ?`,
		upd.Status, upd.Priority, upd.DueDate, id,
	)
	if err != nil {
		return fmt.Errorf("%s: id=%d: %w", op, id, err)
	}

	return nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteTask"

	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(res, op)
}
