package ingest

import (
	"strings"

	"RecoveryDesk/api/constants"

	"github.com/agnivade/levenshtein"
)

// Cell is one header/value pair from a decoded sheet row. Row preserves the
// source column order, including duplicate headers.
type Cell struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

type Row []Cell

// Headers returns the row's column labels in source order.
func (r Row) Headers() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Header
	}
	return out
}

// normalizeHeader collapses whitespace and NBSPs that spreadsheet exports
// sneak into header cells.
func normalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, constants.NBSP, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveColumn finds the best-matching cell value for an ordered candidate
// list. Pass 1 takes the first case-insensitive exact header match across the
// whole candidate list; only when no candidate matches exactly does pass 2
// fall back to substring containment. Candidate order is caller priority.
// A totally absent column is not an error: ok is false and the caller treats
// the field as "not provided".
func ResolveColumn(row Row, candidates ...string) (string, bool) {
	for _, cand := range candidates {
		lc := strings.ToLower(normalizeHeader(cand))
		for _, cell := range row {
			if strings.ToLower(normalizeHeader(cell.Header)) == lc {
				return cell.Value, true
			}
		}
	}
	for _, cand := range candidates {
		lc := strings.ToLower(normalizeHeader(cand))
		for _, cell := range row {
			if strings.Contains(strings.ToLower(normalizeHeader(cell.Header)), lc) {
				return cell.Value, true
			}
		}
	}
	return "", false
}

// SuggestHeader returns the known header closest to the given label, for
// preview responses that flag unmapped columns. Suggestions with an edit
// distance above half the label length are considered noise and dropped.
func SuggestHeader(header string, known []string) string {
	h := strings.ToLower(normalizeHeader(header))
	if h == "" || len(known) == 0 {
		return ""
	}
	best := ""
	bestDist := -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(h, strings.ToLower(k))
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = k
		}
	}
	if bestDist > len(h)/2 {
		return ""
	}
	return best
}
