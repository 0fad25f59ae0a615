package storage

// Chart-ready aggregate rows produced by the metrics service. Values are
// already rounded, the JSON goes straight to the frontend or the exporters.

type OEERow struct {
	Machine      string  `json:"machine"`
	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Quality      float64 `json:"quality"`
	OEE          float64 `json:"oee"`
	Records      int     `json:"records"`
}

type DowntimeRow struct {
	Category   string  `json:"category"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"`
}

type RejectionRow struct {
	Defect     string  `json:"defect"`
	Quantity   int     `json:"quantity"`
	Percentage float64 `json:"percentage"`
}

type TrendRow struct {
	Month       string  `json:"month"`
	AvgRejected float64 `json:"avg_rejected"`
	AvgOEE      float64 `json:"avg_oee"`
	AvgDowntime float64 `json:"avg_downtime"`
}

type PerformerSummary struct {
	Best  *OEERow `json:"best,omitempty"`
	Worst *OEERow `json:"worst,omitempty"`
}

type ReportBundle struct {
	OEEByMachine       []OEERow       `json:"oee_by_machine"`
	DowntimeByCategory []DowntimeRow  `json:"downtime_by_category"`
	RejectionByDefect  []RejectionRow `json:"rejection_by_defect"`
	TrendByMonth       []TrendRow     `json:"trend_by_month"`
	Performers         PerformerSummary `json:"performers"`
}
