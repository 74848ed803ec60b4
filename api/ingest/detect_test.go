package ingest

import (
	"testing"

	"RecoveryDesk/api/records"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    records.RecordType
	}{
		{
			"nexus by user id",
			[]string{"Name", "User ID", "Transaction Date & Time"},
			records.TypeNexus,
		},
		{
			"settlement by creditor vocabulary",
			[]string{"Name", "Mobile Number", "Creditor Name", "Loan Amount"},
			records.TypeSettlement,
		},
		{
			"protect by institution",
			[]string{"Name", "Mobile Number", "Institution", "EMI Amount", "Current DPD"},
			records.TypeProtect,
		},
		{
			"unrecognized defaults to protect",
			[]string{"Col A", "Col B"},
			records.TypeProtect,
		},
		{
			"nexus wins over settlement",
			[]string{"User ID", "Loan Amount"},
			records.TypeNexus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectType(tt.headers); got != tt.want {
				t.Errorf("DetectType(%v) = %q, want %q", tt.headers, got, tt.want)
			}
		})
	}
}
