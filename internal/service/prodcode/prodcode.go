package prodcode

import (
	"strings"
	"time"
)

// Type tags appended to generated codes.
const (
	tagInjection = "INJ"
	tagAssembly  = "ASM"
)

// Generate builds the human-readable production code for one run:
// <MACHINE>-<PRODUCT>-<YYYYMMDD>-<SHIFT>-<TAG>. Names are uppercased with
// everything outside [A-Z0-9] stripped, without truncation, so distinct
// input tuples cannot collide on the separator.
//
// An empty result means "not ready": one of the inputs is missing and the
// caller must not submit yet.
func Generate(machineName, productName, date, shift, productionType string) string {
	if machineName == "" || productName == "" || date == "" || shift == "" || productionType == "" {
		return ""
	}

	compactDate := compactISODate(date)
	if compactDate == "" {
		return ""
	}

	var tag string
	switch productionType {
	case "injection-molding", "injection":
		tag = tagInjection
	case "assembly":
		tag = tagAssembly
	default:
		return ""
	}

	parts := []string{
		normalize(machineName),
		normalize(productName),
		compactDate,
		strings.ToUpper(shift),
		tag,
	}

	return strings.Join(parts, "-")
}

func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func compactISODate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Format("20060102")
}
