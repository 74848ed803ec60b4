package ingest

import (
	"strings"

	"RecoveryDesk/api/records"
)

// Keyword families per partner. The short codes ("sy", "sm") are only
// honored as exact cell values; as substrings they would fire on ordinary
// words.
var (
	sayyamKeywords   = []string{"sayyam", "sayam"}
	snapmintKeywords = []string{"snapmint", "snap mint"}

	sayyamCode   = "sy"
	snapmintCode = "sm"
)

var partnerColumnCandidates = []string{"partner", "source", "client"}

// matchPartner tests one lower-cased string against both keyword families.
func matchPartner(v string, allowShortCodes bool) (records.Partner, bool) {
	for _, kw := range sayyamKeywords {
		if strings.Contains(v, kw) {
			return records.PartnerSayyam, true
		}
	}
	for _, kw := range snapmintKeywords {
		if strings.Contains(v, kw) {
			return records.PartnerSnapmint, true
		}
	}
	if allowShortCodes {
		if v == sayyamCode {
			return records.PartnerSayyam, true
		}
		if v == snapmintCode {
			return records.PartnerSnapmint, true
		}
	}
	return "", false
}

// ResolvePartner infers the business partner for a row. Priority, first
// match wins: explicit override, dedicated partner/source/client column,
// full-row content scan, filename hint, then "other". The layered fallback
// exists because source files name or place the partner indicator
// inconsistently.
func ResolvePartner(row Row, filename string, override records.Partner) records.Partner {
	if override != "" {
		return override
	}
	if v, ok := ResolveColumn(row, partnerColumnCandidates...); ok {
		if p, ok := matchPartner(strings.ToLower(strings.TrimSpace(v)), true); ok {
			return p
		}
	}
	for _, cell := range row {
		if p, ok := matchPartner(strings.ToLower(strings.TrimSpace(cell.Value)), false); ok {
			return p
		}
	}
	if p, ok := matchPartner(strings.ToLower(filename), false); ok {
		return p
	}
	return records.PartnerOther
}
