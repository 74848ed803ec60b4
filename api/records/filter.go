package records

import (
	"strconv"
	"strings"
	"time"

	"RecoveryDesk/api/constants"

	"github.com/shopspring/decimal"
)

// FilterOptions holds independently-toggleable predicate families. A zero
// or "all" value means the family is inactive and passes every record; the
// overall result is the AND of all active families.
type FilterOptions struct {
	Search            string `json:"search,omitempty"`
	Status            string `json:"status,omitempty"`
	Partner           string `json:"partner,omitempty"`
	Lender            string `json:"lender,omitempty"`
	Stage             string `json:"stage,omitempty"`
	DateFrom          string `json:"dateFrom,omitempty"`
	DateTo            string `json:"dateTo,omitempty"`
	PartPaymentBucket string `json:"partPaymentBucket,omitempty"`
	DPDBucketFilter   string `json:"dpdBucket,omitempty"`
	PaymentDueToday   bool   `json:"paymentDueToday,omitempty"`
}

func inactive(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// Filter returns the subset of records satisfying every active predicate.
// Records are never mutated; now anchors the "today" predicates.
func Filter(recs []Record, opts FilterOptions, now time.Time) []Record {
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if Matches(rec, opts, now) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches evaluates one record against all predicate families.
func Matches(rec Record, opts FilterOptions, now time.Time) bool {
	return matchesSearch(rec, opts.Search) &&
		matchesStatus(rec, opts.Status) &&
		matchesPartner(rec, opts.Partner) &&
		matchesLender(rec, opts.Lender) &&
		matchesStage(rec, opts.Stage) &&
		matchesDateRange(rec, opts.DateFrom, opts.DateTo) &&
		matchesPartPaymentBucket(rec, opts.PartPaymentBucket) &&
		matchesDPDBucket(rec, opts.DPDBucketFilter) &&
		matchesPaymentDueToday(rec, opts.PaymentDueToday, now)
}

func matchesSearch(rec Record, q string) bool {
	if inactive(q) {
		return true
	}
	q = strings.ToLower(strings.TrimSpace(q))
	b := rec.Base()
	fields := []string{b.Name, b.Mobile}
	switch r := rec.(type) {
	case *ProtectRecord:
		fields = append(fields, r.AccountNumber)
	case *SettlementRecord:
		fields = append(fields, r.LoanAccNo)
	case *NexusRecord:
		fields = append(fields, r.Email)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// matchesStatus handles the two overloads: Protect's "Part Payment" and
// "Skip EMI" are stage values surfaced as statuses in the UI, and Nexus's
// request-raised pseudo-statuses test formFilledDate truthiness.
func matchesStatus(rec Record, status string) bool {
	if inactive(status) {
		return true
	}
	switch r := rec.(type) {
	case *ProtectRecord:
		if status == "Part Payment" || status == "Skip EMI" {
			return r.Stage == status
		}
	case *NexusRecord:
		switch status {
		case "request-raised-yes":
			return r.FormFilledDate != ""
		case "request-raised-no":
			return r.FormFilledDate == ""
		}
	}
	return rec.Base().Status == status
}

func matchesPartner(rec Record, partner string) bool {
	if inactive(partner) {
		return true
	}
	return string(rec.Base().Partner) == partner
}

// matchesLender fails closed for Nexus: leads have no lender, so an active
// lender filter excludes them.
func matchesLender(rec Record, lender string) bool {
	if inactive(lender) {
		return true
	}
	switch r := rec.(type) {
	case *ProtectRecord:
		return r.Institution == lender
	case *SettlementRecord:
		return r.LenderName == lender
	}
	return false
}

func matchesStage(rec Record, stage string) bool {
	if inactive(stage) {
		return true
	}
	return rec.Base().Stage == stage
}

// referenceDate picks the per-type date the range filter tests. Protect
// uses formFilledDate on purpose, never nexusPurchaseDate.
func referenceDate(rec Record) string {
	switch r := rec.(type) {
	case *ProtectRecord:
		return r.FormFilledDate
	case *SettlementRecord:
		if r.CreatedDate != "" {
			return r.CreatedDate
		}
		return r.FormFilledDate
	case *NexusRecord:
		if r.NexusPurchaseDate != "" {
			return r.NexusPurchaseDate
		}
		return r.FormFilledDate
	}
	return ""
}

// parseFilterDay parses a stored date for comparison: ISO first, then
// D/M/Y. Anything else fails.
func parseFilterDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) >= 10 {
		if t, err := time.ParseInLocation(constants.DateFormat, s[:10], time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range []string{"2/1/2006", "02/01/2006", "2-1-2006", "02-01-2006"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// matchesDateRange is inclusive at both ends and fails closed: a record
// with no resolvable reference date never matches an active range, however
// wide the range is.
func matchesDateRange(rec Record, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	ref, ok := parseFilterDay(referenceDate(rec))
	if !ok {
		return false
	}
	if from != "" {
		f, ok := parseFilterDay(from)
		if !ok {
			return false
		}
		if ref.Before(f) {
			return false
		}
	}
	if to != "" {
		t, ok := parseFilterDay(to)
		if !ok {
			return false
		}
		if ref.After(t) {
			return false
		}
	}
	return true
}

func recordPaymentParts(rec Record) ([]PaymentPart, float64) {
	switch r := rec.(type) {
	case *ProtectRecord:
		return r.PaymentParts, r.PartPaymentAmount
	case *SettlementRecord:
		return r.PaymentParts, r.PartPaymentAmount
	}
	return nil, 0
}

// partPaymentAmount sums the payment parts when any exist and the sum is
// positive; otherwise it falls back to the legacy single-amount field.
func partPaymentAmount(rec Record) float64 {
	parts, legacy := recordPaymentParts(rec)
	if len(parts) > 0 {
		sum := decimal.Zero
		for _, p := range parts {
			sum = sum.Add(decimal.NewFromFloat(p.Amount))
		}
		if sum.GreaterThan(decimal.Zero) {
			return sum.InexactFloat64()
		}
	}
	return legacy
}

// Buckets are (lower, upper]: zero never matches any bucket.
var partPaymentBuckets = map[string][2]float64{
	"0-500":      {0, 500},
	"500-1000":   {500, 1000},
	"1000-5000":  {1000, 5000},
	"5000-10000": {5000, 10000},
	"10000+":     {10000, -1},
}

func matchesPartPaymentBucket(rec Record, bucket string) bool {
	if inactive(bucket) {
		return true
	}
	bounds, ok := partPaymentBuckets[bucket]
	if !ok {
		return false
	}
	amt := partPaymentAmount(rec)
	if amt <= bounds[0] {
		return false
	}
	if bounds[1] < 0 {
		return true
	}
	return amt <= bounds[1]
}

// matchesDPDBucket applies to Settlement only; a non-numeric DPD never
// matches an active bucket.
func matchesDPDBucket(rec Record, bucket string) bool {
	if inactive(bucket) {
		return true
	}
	r, ok := rec.(*SettlementRecord)
	if !ok {
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.DPD))
	if err != nil {
		return false
	}
	return DPDBucket(float64(n)) == bucket
}

func matchesPaymentDueToday(rec Record, active bool, now time.Time) bool {
	if !active {
		return true
	}
	today := now.Format(constants.DateFormat)
	parts, _ := recordPaymentParts(rec)
	for _, p := range parts {
		if p.Date == today {
			return true
		}
	}
	return false
}
