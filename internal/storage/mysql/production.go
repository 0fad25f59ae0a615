package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"mes-dashboard/internal/storage"
)

var ErrRecordNotFound = errors.New("production record not found")

// RecordFilter narrows the production-record list query. Zero values mean
// "no constraint"; Limit 0 returns everything.
type RecordFilter struct {
	From    time.Time
	To      time.Time
	Machine string
	Type    string
	Shift   string
	Status  string
	Search  string
	Limit   uint64
	Offset  uint64
}

const recordColumns = `id, code, production_type, date, shift, machine_name, product_name, mold_name,
	planned_qty, actual_qty, rejected_qty, lumps_qty, planned_mins, downtime,
	lumps_reason, downtime_type, downtime_label, defect_type, defect_label,
	operator, supervisor, team, status, efficiency, created_at`

func (s *Storage) SaveProductionRecord(ctx context.Context, rec storage.ProductionRecord) (int64, error) {
	const op = "storage.mysql.SaveProductionRecord"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO production_records
		(code, production_type, date, shift, machine_name, product_name, mold_name,
		 planned_qty, actual_qty, rejected_qty, lumps_qty, planned_mins, downtime,
		 lumps_reason, downtime_type, downtime_label, defect_type, defect_label,
		 operator, supervisor, team, status, efficiency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Code, rec.ProductionType, rec.Date, rec.Shift, rec.MachineName, rec.ProductName, rec.MoldName,
		rec.PlannedQty, rec.ActualQty, rec.RejectedQty, rec.LumpsQty, rec.PlannedMins, rec.Downtime,
		rec.LumpsReason, rec.DowntimeType, rec.DowntimeLabel, rec.DefectType, rec.DefectLabel,
		rec.Operator, rec.Supervisor, rec.Team, rec.Status, rec.Efficiency,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: insert record: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	stmtEntry, err := tx.PrepareContext(ctx, `
		INSERT INTO rejection_entries (entry_id, record_id, type, quantity, reason, assigned_to_team)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare entry insert: %w", op, err)
	}
	defer stmtEntry.Close()

	stmtAction, err := tx.PrepareContext(ctx, `
		INSERT INTO corrective_actions (id, record_id, entry_id, action, responsible, due_date)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare action insert: %w", op, err)
	}
	defer stmtAction.Close()

	for _, entry := range rec.Rejections {
		_, err := stmtEntry.ExecContext(ctx, entry.EntryID, id, entry.Type, entry.Quantity, entry.Reason, entry.AssignedToTeam)
		if err != nil {
			return 0, fmt.Errorf("%s: insert rejection entry %s: %w", op, entry.EntryID, err)
		}
		for _, a := range entry.CorrectiveActions {
			_, err := stmtAction.ExecContext(ctx, a.ID, id, entry.EntryID, a.Action, a.Responsible, a.DueDate)
			if err != nil {
				return 0, fmt.Errorf("%s: insert corrective action %s: %w", op, a.ID, err)
			}
		}
	}

	for _, a := range rec.DowntimeActions {
		_, err := stmtAction.ExecContext(ctx, a.ID, id, "", a.Action, a.Responsible, a.DueDate)
		if err != nil {
			return 0, fmt.Errorf("%s: insert downtime action %s: %w", op, a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetProductionRecords(ctx context.Context, filter RecordFilter) ([]storage.ProductionRecord, error) {
	const op = "storage.mysql.GetProductionRecords"

	sb := sq.Select(recordColumns).From("production_records")

	if !filter.From.IsZero() {
		sb = sb.Where(sq.GtOrEq{"date": filter.From.Format("2006-01-02")})
	}
	if !filter.To.IsZero() {
		sb = sb.Where(sq.LtOrEq{"date": filter.To.Format("2006-01-02")})
	}
	if filter.Machine != "" {
		sb = sb.Where(sq.Eq{"machine_name": filter.Machine})
	}
	if filter.Type != "" {
		sb = sb.Where(sq.Eq{"production_type": filter.Type})
	}
	if filter.Shift != "" {
		sb = sb.Where(sq.Eq{"shift": filter.Shift})
	}
	if filter.Status != "" {
		sb = sb.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		sb = sb.Where(sq.Or{
			sq.Like{"code": like},
			sq.Like{"machine_name": like},
			sq.Like{"product_name": like},
		})
	}

	sb = sb.OrderBy("date DESC", "id DESC")
	if filter.Limit > 0 {
		sb = sb.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []storage.ProductionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return records, nil
}

func (s *Storage) GetProductionRecord(ctx context.Context, id int64) (*storage.ProductionRecord, error) {
	const op = "storage.mysql.GetProductionRecord"

	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM production_records WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.getRejectionEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.Rejections = entries

	downtimeActions, err := s.getCorrectiveActions(ctx, id, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.DowntimeActions = downtimeActions

	return &rec, nil
}

func (s *Storage) DeleteProductionRecord(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteProductionRecord"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM corrective_actions WHERE record_id = ?`, id); err != nil {
		return fmt.Errorf("%s: delete corrective actions: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rejection_entries WHERE record_id = ?`, id); err != nil {
		return fmt.Errorf("%s: delete rejection entries: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM production_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: delete record: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: id=%d: %w", op, id, ErrRecordNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) getRejectionEntries(ctx context.Context, recordID int64) ([]storage.RejectionEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, type, quantity, reason, assigned_to_team
		FROM rejection_entries WHERE record_id = ?`, recordID)
	if err != nil {
		return nil, fmt.Errorf("rejection entries: %w", err)
	}
	defer rows.Close()

	var entries []storage.RejectionEntry
	for rows.Next() {
		var e storage.RejectionEntry
		if err := rows.Scan(&e.EntryID, &e.Type, &e.Quantity, &e.Reason, &e.AssignedToTeam); err != nil {
			return nil, fmt.Errorf("scan rejection entry: %w", err)
		}
		actions, err := s.getCorrectiveActions(ctx, recordID, e.EntryID)
		if err != nil {
			return nil, err
		}
		e.CorrectiveActions = actions
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Storage) getCorrectiveActions(ctx context.Context, recordID int64, entryID string) ([]storage.CorrectiveAction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, responsible, due_date
		FROM corrective_actions WHERE record_id = ? AND entry_id = ?`, recordID, entryID)
	if err != nil {
		return nil, fmt.Errorf("corrective actions: %w", err)
	}
	defer rows.Close()

	var actions []storage.CorrectiveAction
	for rows.Next() {
		var a storage.CorrectiveAction
		var due time.Time
		if err := rows.Scan(&a.ID, &a.Action, &a.Responsible, &due); err != nil {
			return nil, fmt.Errorf("scan corrective action: %w", err)
		}
		a.DueDate = due.Format("2006-01-02")
		actions = append(actions, a)
	}

	return actions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (storage.ProductionRecord, error) {
	var rec storage.ProductionRecord
	var date time.Time

	err := row.Scan(
		&rec.ID, &rec.Code, &rec.ProductionType, &date, &rec.Shift, &rec.MachineName, &rec.ProductName, &rec.MoldName,
		&rec.PlannedQty, &rec.ActualQty, &rec.RejectedQty, &rec.LumpsQty, &rec.PlannedMins, &rec.Downtime,
		&rec.LumpsReason, &rec.DowntimeType, &rec.DowntimeLabel, &rec.DefectType, &rec.DefectLabel,
		&rec.Operator, &rec.Supervisor, &rec.Team, &rec.Status, &rec.Efficiency, &rec.CreatedAt,
	)
	if err != nil {
		return storage.ProductionRecord{}, err
	}

	rec.Date = date.Format("2006-01-02")
	return rec, nil
}
