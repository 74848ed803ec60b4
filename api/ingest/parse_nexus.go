package ingest

import (
	"strings"

	"RecoveryDesk/api/records"
)

// ParseNexusRow maps a validated row into a Nexus lead record.
//
// formFilledDate resolution is deliberately layered: (a) the "form filled"
// column as a date, (b) a literal "Yes" when the column only answers
// yes/no, (c) the purchase date (or today) when a separate request-raised
// flag is set, (d) empty. Downstream code treats any non-empty value as
// "request raised".
func ParseNexusRow(row Row, filename string, partnerOverride records.Partner, user string) *records.NexusRecord {
	col := func(candidates ...string) string {
		v, _ := ResolveColumn(row, candidates...)
		return strings.TrimSpace(v)
	}

	txnRaw := col("transaction date & time", "transaction datetime", "txn date & time")
	txnTime := ""
	if txnRaw != "" {
		txnTime = NormalizeDateTime(txnRaw)
	}
	purchaseDate := NormalizeDate(col("nexus purchase date", "purchase date"))
	if purchaseDate == "" && isoPrefixRe.MatchString(txnTime) {
		purchaseDate = txnTime[:10]
	}

	formFilled := ""
	ffRaw := col("form filled date", "form filled")
	ffLower := strings.ToLower(ffRaw)
	if d, ok := NormalizeOptionalDate(ffRaw); ok {
		formFilled = d
	} else if ffLower == "yes" || ffLower == "y" {
		formFilled = "Yes"
	} else if NormalizeBoolean(col("request raised", "request")) {
		if purchaseDate != "" {
			formFilled = purchaseDate
		} else {
			formFilled = todayLocal()
		}
	}

	return &records.NexusRecord{
		RecordBase:        newBase(records.TypeNexus, row, filename, partnerOverride, user),
		NexusPurchaseDate: purchaseDate,
		FormFilledDate:    formFilled,
		TransactionTime:   txnTime,
		UserID:            col(userIDColumnCandidates...),
		Email:             col("email", "email id"),
	}
}
