package dash

import (
	"sort"
	"time"

	"RecoveryDesk/api/constants"
	"RecoveryDesk/api/records"
	"RecoveryDesk/internal/config"
)

// Stats is the dashboard aggregate over the full record collection. Every
// derived figure skips records whose dates fail to parse instead of
// erroring; a garbled date costs one data point, never the dashboard.
type Stats struct {
	TotalRecords   int            `json:"totalRecords"`
	CountsByType   map[string]int `json:"countsByType"`
	CountsByStatus map[string]int `json:"countsByStatus"`
	ByPartner      map[string]int `json:"byPartner"`
	DPDHistogram   map[string]int `json:"dpdHistogram"`
	DailySeries    []DailyPoint   `json:"dailySeries"`
	NPAToday       int            `json:"npaToday"`
	NewToday       int            `json:"newToday"`
	RecentUploads  []records.UploadHistory `json:"recentUploads"`
}

// DailyPoint is one day in the per-type creation series. Days with no
// records still appear with zero counts so charts render contiguous axes.
type DailyPoint struct {
	Date       string `json:"date"`
	Protect    int    `json:"protect"`
	Settlement int    `json:"settlement"`
	Nexus      int    `json:"nexus"`
}

// creationDay extracts the YYYY-MM-DD day a record entered the system.
func creationDay(rec records.Record) (string, bool) {
	up := rec.Base().UploadedAt
	if len(up) < 10 {
		return "", false
	}
	day := up[:10]
	if _, err := time.Parse(constants.DateFormat, day); err != nil {
		return "", false
	}
	return day, true
}

// lastPaymentRef picks the date the NPA clock measures from: the date of
// the latest received payment part, else the edited last-payment field,
// else the scheduled EMI/due date when it is not today itself.
func lastPaymentRef(rec records.Record, today string) string {
	var parts []records.PaymentPart
	var edited, scheduled string
	switch r := rec.(type) {
	case *records.ProtectRecord:
		parts, edited, scheduled = r.PaymentParts, r.LastPaymentDate, r.EMIDate
	case *records.SettlementRecord:
		parts, edited, scheduled = r.PaymentParts, r.LastPaymentDate, r.DueDate
	default:
		return ""
	}
	latest := ""
	for _, p := range parts {
		if p.IsReceived && p.Date > latest {
			latest = p.Date
		}
	}
	if latest != "" {
		return latest
	}
	if edited != "" {
		return edited
	}
	if scheduled != "" && scheduled != today {
		return scheduled
	}
	return ""
}

func parseDay(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(constants.DateFormat, s[:10], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ComputeStats aggregates the collection for the dashboard. now anchors
// "today" so the aggregation is reproducible in tests.
func ComputeStats(recs []records.Record, history []records.UploadHistory, now time.Time) Stats {
	today := now.Format(constants.DateFormat)
	stats := Stats{
		TotalRecords:   len(recs),
		CountsByType:   map[string]int{},
		CountsByStatus: map[string]int{},
		ByPartner:      map[string]int{},
		DPDHistogram:   map[string]int{},
		DailySeries:    []DailyPoint{},
	}

	perDay := map[string]*DailyPoint{}
	earliest := ""
	for _, rec := range recs {
		b := rec.Base()
		stats.CountsByType[string(b.Type)]++
		stats.CountsByStatus[b.Status]++
		stats.ByPartner[string(b.Partner)]++

		if p, ok := rec.(*records.ProtectRecord); ok && p.DPDGroup != "" {
			stats.DPDHistogram[p.DPDGroup]++
		}

		if day, ok := creationDay(rec); ok {
			if earliest == "" || day < earliest {
				earliest = day
			}
			pt := perDay[day]
			if pt == nil {
				pt = &DailyPoint{Date: day}
				perDay[day] = pt
			}
			switch b.Type {
			case records.TypeProtect:
				pt.Protect++
			case records.TypeSettlement:
				pt.Settlement++
			case records.TypeNexus:
				pt.Nexus++
			}
			if day == today {
				stats.NewToday++
			}
		}

		if ref, ok := parseDay(lastPaymentRef(rec, today)); ok {
			if now.Sub(ref) >= time.Duration(config.NPAThresholdDays)*24*time.Hour {
				stats.NPAToday++
			}
		}
	}

	if earliest != "" {
		start, ok := parseDay(earliest)
		end, ok2 := parseDay(today)
		if ok && ok2 && !start.After(end) {
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				day := d.Format(constants.DateFormat)
				if pt := perDay[day]; pt != nil {
					stats.DailySeries = append(stats.DailySeries, *pt)
				} else {
					stats.DailySeries = append(stats.DailySeries, DailyPoint{Date: day})
				}
			}
		}
	}
	sort.Slice(stats.DailySeries, func(i, j int) bool {
		return stats.DailySeries[i].Date < stats.DailySeries[j].Date
	})

	if len(history) > 10 {
		history = history[:10]
	}
	stats.RecentUploads = history
	return stats
}
