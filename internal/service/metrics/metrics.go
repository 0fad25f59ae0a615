package metrics

import (
	"math"
	"time"

	"mes-dashboard/internal/storage"
)

// Category used when a record carries no downtime or defect type.
const otherBucket = "Other"

// Efficiency is the stored per-record ratio of actual to planned output,
// clamped to 100 so over-production is not amplified in downstream averages.
func Efficiency(plannedQty, actualQty int) int {
	if plannedQty <= 0 {
		return 0
	}
	pct := float64(actualQty) / float64(plannedQty) * 100
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(sanitize(pct)))
}

// RecordOEE computes the availability/performance/quality triple of a single
// record as fractions in [0,1]. Every ratio is zero-guarded: a zero
// denominator yields 0 for that component, never NaN.
func RecordOEE(rec storage.ProductionRecord) (availability, performance, quality, oee float64) {
	if rec.PlannedMins > 0 {
		availability = float64(rec.PlannedMins-rec.Downtime) / float64(rec.PlannedMins)
	}

	producedQty := rec.ActualQty + rec.RejectedQty
	if rec.PlannedQty > 0 {
		performance = float64(producedQty) / float64(rec.PlannedQty)
	}

	okQty := rec.ActualQty - rec.RejectedQty
	if producedQty > 0 {
		quality = float64(okQty) / float64(producedQty)
	}

	availability = sanitize(availability)
	performance = sanitize(performance)
	quality = sanitize(quality)
	oee = availability * performance * quality
	return availability, performance, quality, oee
}

// OEEByMachine averages the per-record components per machine; the scalar OEE
// of a machine is the product of its averaged components. Rows keep the order
// machines are first encountered in the input.
func OEEByMachine(records []storage.ProductionRecord) []storage.OEERow {
	type acc struct {
		a, p, q float64
		n       int
	}

	var order []string
	sums := make(map[string]*acc)

	for _, rec := range records {
		a, p, q, _ := RecordOEE(rec)
		s, ok := sums[rec.MachineName]
		if !ok {
			s = &acc{}
			sums[rec.MachineName] = s
			order = append(order, rec.MachineName)
		}
		s.a += a
		s.p += p
		s.q += q
		s.n++
	}

	rows := make([]storage.OEERow, 0, len(order))
	for _, name := range order {
		s := sums[name]
		avgA := s.a / float64(s.n)
		avgP := s.p / float64(s.n)
		avgQ := s.q / float64(s.n)
		rows = append(rows, storage.OEERow{
			Machine:      name,
			Availability: round1(avgA * 100),
			Performance:  round1(avgP * 100),
			Quality:      round1(avgQ * 100),
			OEE:          round1(avgA * avgP * avgQ * 100),
			Records:      s.n,
		})
	}
	return rows
}

// DowntimeByCategory sums downtime minutes per downtime type. Records without
// a type land in the "Other" bucket; with a zero grand total every percentage
// is 0.
func DowntimeByCategory(records []storage.ProductionRecord) []storage.DowntimeRow {
	var order []string
	sums := make(map[string]int)
	grand := 0

	for _, rec := range records {
		cat := rec.DowntimeType
		if cat == "" {
			cat = otherBucket
		}
		if _, ok := sums[cat]; !ok {
			order = append(order, cat)
		}
		sums[cat] += rec.Downtime
		grand += rec.Downtime
	}

	rows := make([]storage.DowntimeRow, 0, len(order))
	for _, cat := range order {
		row := storage.DowntimeRow{Category: cat, Minutes: sums[cat]}
		if grand > 0 {
			row.Percentage = round1(float64(sums[cat]) / float64(grand) * 100)
		}
		rows = append(rows, row)
	}
	return rows
}

// RejectionByDefect sums rejected quantities per defect type, same bucket and
// zero-guard rules as DowntimeByCategory.
func RejectionByDefect(records []storage.ProductionRecord) []storage.RejectionRow {
	var order []string
	sums := make(map[string]int)
	grand := 0

	for _, rec := range records {
		defect := rec.DefectType
		if defect == "" {
			defect = otherBucket
		}
		if _, ok := sums[defect]; !ok {
			order = append(order, defect)
		}
		sums[defect] += rec.RejectedQty
		grand += rec.RejectedQty
	}

	rows := make([]storage.RejectionRow, 0, len(order))
	for _, defect := range order {
		row := storage.RejectionRow{Defect: defect, Quantity: sums[defect]}
		if grand > 0 {
			row.Percentage = round1(float64(sums[defect]) / float64(grand) * 100)
		}
		rows = append(rows, row)
	}
	return rows
}

// TrendByMonth groups records by calendar month of their date and reports the
// monthly averages of rejected quantity, per-record OEE and downtime.
// Records with an unparseable date cannot be bucketed and are skipped.
func TrendByMonth(records []storage.ProductionRecord) []storage.TrendRow {
	type acc struct {
		rejected, oee, downtime float64
		n                       int
	}

	var order []string
	sums := make(map[string]*acc)

	for _, rec := range records {
		t, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			continue
		}
		month := t.Format("Jan")

		s, ok := sums[month]
		if !ok {
			s = &acc{}
			sums[month] = s
			order = append(order, month)
		}
		_, _, _, oee := RecordOEE(rec)
		s.rejected += float64(rec.RejectedQty)
		s.oee += oee * 100
		s.downtime += float64(rec.Downtime)
		s.n++
	}

	rows := make([]storage.TrendRow, 0, len(order))
	for _, month := range order {
		s := sums[month]
		n := float64(s.n)
		rows = append(rows, storage.TrendRow{
			Month:       month,
			AvgRejected: round1(s.rejected / n),
			AvgOEE:      round1(s.oee / n),
			AvgDowntime: round1(s.downtime / n),
		})
	}
	return rows
}

// BestWorst picks the machines with the highest and lowest OEE. Ties keep the
// first-encountered row, the input order is never re-sorted.
func BestWorst(rows []storage.OEERow) storage.PerformerSummary {
	var summary storage.PerformerSummary
	for i := range rows {
		row := rows[i]
		if summary.Best == nil || row.OEE > summary.Best.OEE {
			best := row
			summary.Best = &best
		}
		if summary.Worst == nil || row.OEE < summary.Worst.OEE {
			worst := row
			summary.Worst = &worst
		}
	}
	return summary
}

func round1(x float64) float64 {
	return math.Round(sanitize(x)*10) / 10
}

func sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
