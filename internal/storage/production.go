package storage

import "time"

// Production types accepted on a record.
const (
	TypeInjection = "injection-molding"
	TypeAssembly  = "assembly"
)

// Record statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

type ProductionRecord struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	ProductionType string `json:"production_type"`
	Date           string `json:"date"`
	Shift          string `json:"shift"`
	MachineName    string `json:"machine_name"`
	ProductName    string `json:"product_name"`
	MoldName       string `json:"mold_name,omitempty"`

	PlannedQty  int `json:"planned_qty"`
	ActualQty   int `json:"actual_qty"`
	RejectedQty int `json:"rejected_qty"`
	LumpsQty    int `json:"lumps_qty"`

	PlannedMins int `json:"planned_mins"`
	Downtime    int `json:"downtime"`

	LumpsReason   string `json:"lumps_reason,omitempty"`
	DowntimeType  string `json:"downtime_type,omitempty"`
	DowntimeLabel string `json:"downtime_label,omitempty"`
	DefectType    string `json:"defect_type,omitempty"`
	DefectLabel   string `json:"defect_label,omitempty"`

	Operator   string `json:"operator,omitempty"`
	Supervisor string `json:"supervisor,omitempty"`
	Team       string `json:"team,omitempty"`

	Status     string `json:"status"`
	Efficiency int    `json:"efficiency"`

	Rejections      []RejectionEntry   `json:"rejections,omitempty"`
	DowntimeActions []CorrectiveAction `json:"downtime_corrective_actions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type RejectionEntry struct {
	EntryID           string             `json:"entry_id"`
	Type              string             `json:"type"`
	Quantity          int                `json:"quantity"`
	Reason            string             `json:"reason"`
	AssignedToTeam    string             `json:"assigned_to_team,omitempty"`
	CorrectiveActions []CorrectiveAction `json:"corrective_actions,omitempty"`
}

type CorrectiveAction struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Responsible string `json:"responsible"`
	DueDate     string `json:"due_date"`
}

// Complete reports whether every field of the action is filled in.
// Partially filled actions are discarded before persistence.
func (a CorrectiveAction) Complete() bool {
	return a.Action != "" && a.Responsible != "" && a.DueDate != ""
}
