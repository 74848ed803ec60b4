package ingest

import (
	"strings"

	"RecoveryDesk/api/records"
)

// ParseSettlementRow maps a validated row into a Settlement record.
// LoanAmount is mirrored into DueAmt for older consumers, and every
// manually-edited field starts unset (TriUnset, not false) so the UI can
// tell "never answered" from "answered no".
func ParseSettlementRow(row Row, filename string, partnerOverride records.Partner, user string) *records.SettlementRecord {
	col := func(candidates ...string) string {
		v, _ := ResolveColumn(row, candidates...)
		return strings.TrimSpace(v)
	}

	loanAmount := NormalizeNumber(col("loan amount", "due amt", "due amount", "outstanding amount"))

	rec := &records.SettlementRecord{
		RecordBase:      newBase(records.TypeSettlement, row, filename, partnerOverride, user),
		CreatedDate:     NormalizeDate(col("created date", "created", "date")),
		FormFilledDate:  NormalizeDate(col("form filled date", "form filled")),
		DebtType:        col("debt type"),
		LenderName:      col("creditor name", "lender name", "lender"),
		CreditCardNo:    col("credit card no", "credit card number", "card no"),
		LoanAccNo:       col("loan account number", "loan acc no", "loan account"),
		LoanAmount:      loanAmount,
		DueAmt:          loanAmount,
		DueDate:         NormalizeDate(col("due date")),
		IsEMIBounced:    NormalizeBoolean(col("is emi bounced", "emi bounced")),
		IsLegalNotice:   NormalizeBoolean(col("is legal notice", "legal notice")),
		RecommendedAmt:  NormalizeNumber(col("recommended amount", "recommended amt")),
		CustomerWishAmt: NormalizeNumber(col("customer wish amount", "customer wish amt", "wish amount")),
		DPD:             col("dpd"),

		LenderContact:    "",
		FundsAvailable:   records.TriUnset,
		SettlementOption: "",
		EMIMonths:        "",
		WhatsappReachout: records.TriUnset,
	}
	return rec
}
