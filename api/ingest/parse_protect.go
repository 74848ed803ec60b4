package ingest

import (
	"strings"

	"RecoveryDesk/api/records"
)

// ParseProtectRow maps a validated row into a Protect record. The DPD group
// is derived once here from the numeric reading of the DPD column (current
// DPD as fallback); it is not recomputed later unless explicitly requested.
func ParseProtectRow(row Row, filename string, partnerOverride records.Partner, user string) *records.ProtectRecord {
	col := func(candidates ...string) string {
		v, _ := ResolveColumn(row, candidates...)
		return strings.TrimSpace(v)
	}

	dpd := col("current dpd")
	dpdOriginal := col("dpd")
	if dpdOriginal == "" {
		dpdOriginal = dpd
	}
	if dpd == "" {
		dpd = dpdOriginal
	}

	rec := &records.ProtectRecord{
		RecordBase:        newBase(records.TypeProtect, row, filename, partnerOverride, user),
		NexusPurchaseDate: NormalizeDate(col("nexus purchase date", "purchase date")),
		FormFilledDate:    NormalizeDate(col("form filled date", "form filled", "created date")),
		PANNumber:         col("pan number", "pan"),
		Plan:              col("plan"),
		Institution:       col("institution", "lender", "bank name", "bank"),
		AccountNumber:     col("account number", "account no", "acc no"),
		AccountType:       col("account type"),
		DateOpened:        NormalizeDate(col("date opened", "opened on")),
		EMIDate:           NormalizeDate(col("emi date")),
		EMIAmount:         NormalizeNumber(col("emi amount", "emi amt")),
		DPD:               dpdOriginal,
		CurrentDPD:        dpd,
		SkippedEMIDate:    NormalizeDate(col("skipped emi date", "skip emi date")),
		NextFollowUpDate:  NormalizeDate(col("next follow up date", "follow up date", "next follow up")),
	}
	rec.DPDGroup = records.DPDBucket(NormalizeNumber(rec.DPD))
	return rec
}
