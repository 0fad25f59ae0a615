package storage

import "time"

// Task priorities and statuses.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// TaskDraft is a follow-up work item proposed from a production record.
// RecordID and SourceEntryID together form the idempotency key the store
// deduplicates on.
type TaskDraft struct {
	Title          string `json:"title"`
	TaskType       string `json:"task_type"`
	Priority       string `json:"priority"`
	AssignedTeam   string `json:"assigned_team"`
	Description    string `json:"description"`
	DueDate        string `json:"due_date"`
	ProductionCode string `json:"production_code"`
	CreatedFrom    string `json:"created_from"`
	RecordID       int64  `json:"record_id"`
	SourceEntryID  string `json:"source_entry_id"`
}

type Task struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	TaskType       string    `json:"task_type"`
	Priority       string    `json:"priority"`
	AssignedTeam   string    `json:"assigned_team"`
	Description    string    `json:"description"`
	DueDate        string    `json:"due_date"`
	ProductionCode string    `json:"production_code,omitempty"`
	CreatedFrom    string    `json:"created_from,omitempty"`
	RecordID       int64     `json:"record_id,omitempty"`
	SourceEntryID  string    `json:"source_entry_id,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateTask struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}
