package ingest

import (
	"testing"

	"RecoveryDesk/api/records"
)

func TestResolvePartner(t *testing.T) {
	tests := []struct {
		name     string
		row      Row
		filename string
		override records.Partner
		want     records.Partner
	}{
		{
			"override wins",
			row("Partner", "snapmint"),
			"sayyam_export.xlsx",
			records.PartnerSayyam,
			records.PartnerSayyam,
		},
		{
			"dedicated column keyword",
			row("Source", "Sayyam Fintech"),
			"",
			"",
			records.PartnerSayyam,
		},
		{
			"dedicated column short code",
			row("Partner", "SM"),
			"",
			"",
			records.PartnerSnapmint,
		},
		{
			"short code ignored outside dedicated column",
			row("Name", "sm"),
			"",
			"",
			records.PartnerOther,
		},
		{
			"row scan finds keyword anywhere",
			row("Name", "Asha", "Notes", "referred via snapmint app"),
			"",
			"",
			records.PartnerSnapmint,
		},
		{
			"filename fallback",
			row("Name", "Asha"),
			"sayyam_march.csv",
			"",
			records.PartnerSayyam,
		},
		{
			"misspelling sayam",
			row("Partner", "Sayam"),
			"",
			"",
			records.PartnerSayyam,
		},
		{
			"nothing matches",
			row("Name", "Asha"),
			"upload.csv",
			"",
			records.PartnerOther,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePartner(tt.row, tt.filename, tt.override); got != tt.want {
				t.Errorf("ResolvePartner = %q, want %q", got, tt.want)
			}
		})
	}
}
