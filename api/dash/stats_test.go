package dash

import (
	"testing"
	"time"

	"RecoveryDesk/api/records"
)

var statsNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)

func uploadedAt(day string) string { return day + "T09:00:00+05:30" }

func TestComputeStatsCounts(t *testing.T) {
	recs := []records.Record{
		&records.ProtectRecord{
			RecordBase: records.RecordBase{Type: records.TypeProtect, Partner: records.PartnerSayyam, Status: "No Action Taken", UploadedAt: uploadedAt("2026-08-26")},
			DPDGroup:   records.DPDGroup91To180,
		},
		&records.ProtectRecord{
			RecordBase: records.RecordBase{Type: records.TypeProtect, Partner: records.PartnerSayyam, Status: "Contacted", UploadedAt: uploadedAt("2026-08-26")},
			DPDGroup:   records.DPDGroup0To30,
		},
		&records.SettlementRecord{
			RecordBase: records.RecordBase{Type: records.TypeSettlement, Partner: records.PartnerSnapmint, Status: "No Action Taken", UploadedAt: uploadedAt("2026-08-28")},
		},
	}
	stats := ComputeStats(recs, nil, statsNow)

	if stats.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d", stats.TotalRecords)
	}
	if stats.CountsByType["protect"] != 2 || stats.CountsByType["settlement"] != 1 {
		t.Errorf("CountsByType = %v", stats.CountsByType)
	}
	if stats.ByPartner["sayyam"] != 2 || stats.ByPartner["snapmint"] != 1 {
		t.Errorf("ByPartner = %v", stats.ByPartner)
	}
	if stats.DPDHistogram[records.DPDGroup91To180] != 1 || stats.DPDHistogram[records.DPDGroup0To30] != 1 {
		t.Errorf("DPDHistogram = %v", stats.DPDHistogram)
	}
	if stats.NewToday != 1 {
		t.Errorf("NewToday = %d, want 1", stats.NewToday)
	}
}

func TestComputeStatsDailySeriesGapFilled(t *testing.T) {
	recs := []records.Record{
		&records.ProtectRecord{RecordBase: records.RecordBase{Type: records.TypeProtect, UploadedAt: uploadedAt("2026-08-25")}},
		&records.NexusRecord{RecordBase: records.RecordBase{Type: records.TypeNexus, UploadedAt: uploadedAt("2026-08-28")}},
	}
	stats := ComputeStats(recs, nil, statsNow)

	// 25th through 28th inclusive, empty days present with zero counts.
	if len(stats.DailySeries) != 4 {
		t.Fatalf("DailySeries len = %d, want 4 (%v)", len(stats.DailySeries), stats.DailySeries)
	}
	if stats.DailySeries[0].Date != "2026-08-25" || stats.DailySeries[0].Protect != 1 {
		t.Errorf("series[0] = %+v", stats.DailySeries[0])
	}
	if stats.DailySeries[1].Date != "2026-08-26" || stats.DailySeries[1].Protect+stats.DailySeries[1].Settlement+stats.DailySeries[1].Nexus != 0 {
		t.Errorf("gap day not zeroed: %+v", stats.DailySeries[1])
	}
	if stats.DailySeries[3].Date != "2026-08-28" || stats.DailySeries[3].Nexus != 1 {
		t.Errorf("series[3] = %+v", stats.DailySeries[3])
	}
}

func TestComputeStatsNPA(t *testing.T) {
	old := statsNow.AddDate(0, 0, -120).Format("2006-01-02")
	recent := statsNow.AddDate(0, 0, -10).Format("2006-01-02")

	recs := []records.Record{
		// Received part payment 120 days back: NPA.
		&records.ProtectRecord{
			RecordBase:   records.RecordBase{Type: records.TypeProtect, UploadedAt: uploadedAt("2026-01-01")},
			PaymentParts: []records.PaymentPart{{Amount: 500, Date: old, IsReceived: true}},
		},
		// Recent payment: not NPA.
		&records.ProtectRecord{
			RecordBase:      records.RecordBase{Type: records.TypeProtect, UploadedAt: uploadedAt("2026-01-01")},
			LastPaymentDate: recent,
		},
		// Stale due date on a settlement: NPA.
		&records.SettlementRecord{
			RecordBase: records.RecordBase{Type: records.TypeSettlement, UploadedAt: uploadedAt("2026-01-01")},
			DueDate:    old,
		},
		// No payment signal at all: skipped, not counted.
		&records.NexusRecord{
			RecordBase: records.RecordBase{Type: records.TypeNexus, UploadedAt: uploadedAt("2026-01-01")},
		},
		// Garbled date: skipped silently.
		&records.ProtectRecord{
			RecordBase:      records.RecordBase{Type: records.TypeProtect, UploadedAt: uploadedAt("2026-01-01")},
			LastPaymentDate: "unknown",
		},
	}
	stats := ComputeStats(recs, nil, statsNow)
	if stats.NPAToday != 2 {
		t.Fatalf("NPAToday = %d, want 2", stats.NPAToday)
	}
}

func TestComputeStatsReceivedPartBeatsEditedField(t *testing.T) {
	old := statsNow.AddDate(0, 0, -200).Format("2006-01-02")
	recent := statsNow.AddDate(0, 0, -5).Format("2006-01-02")
	rec := &records.ProtectRecord{
		RecordBase:      records.RecordBase{Type: records.TypeProtect, UploadedAt: uploadedAt("2026-01-01")},
		LastPaymentDate: old,
		PaymentParts:    []records.PaymentPart{{Amount: 500, Date: recent, IsReceived: true}},
	}
	stats := ComputeStats([]records.Record{rec}, nil, statsNow)
	if stats.NPAToday != 0 {
		t.Fatalf("NPAToday = %d, want 0 (recent received part wins)", stats.NPAToday)
	}
}

func TestComputeStatsEmptyCollection(t *testing.T) {
	stats := ComputeStats(nil, nil, statsNow)
	if stats.TotalRecords != 0 || len(stats.DailySeries) != 0 || stats.NPAToday != 0 {
		t.Fatalf("empty stats = %+v", stats)
	}
}
