package ingest

import (
	"strings"

	"RecoveryDesk/api/records"
)

// Header-keyword signatures per record kind. Nexus and Settlement carry
// near-unambiguous vocabularies so they are checked first; Protect is the
// fallback because its indicators overlap most with generic CRM sheets.
var (
	nexusHeaderKeys = []string{
		"user id", "userid", "user_id",
		"transaction date & time", "transaction datetime", "txn date & time",
	}
	settlementHeaderKeys = []string{
		"creditor name", "debt type", "loan amount",
		"emi bounced", "customer wish", "recommended am",
	}
	protectHeaderKeys = []string{
		"plan", "institution", "account number", "emi amount", "current dpd",
	}
)

func headersContainAny(headers []string, keys []string) bool {
	for _, h := range headers {
		lh := strings.ToLower(normalizeHeader(h))
		for _, k := range keys {
			if strings.Contains(lh, k) {
				return true
			}
		}
	}
	return false
}

// DetectType classifies a sheet from its full header list.
func DetectType(headers []string) records.RecordType {
	if headersContainAny(headers, nexusHeaderKeys) {
		return records.TypeNexus
	}
	if headersContainAny(headers, settlementHeaderKeys) {
		return records.TypeSettlement
	}
	if headersContainAny(headers, protectHeaderKeys) {
		return records.TypeProtect
	}
	return records.TypeProtect
}
