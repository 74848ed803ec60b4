package ingest

import (
	"unicode"

	"RecoveryDesk/api/records"
)

// Validation is the per-row preview verdict. Invalid rows stay visible in
// the preview with their errors; only valid rows are importable.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

const (
	errNameRequired   = "Name is required"
	errMobileRequired = "Valid mobile number is required (min 10 digits)"
	errUserIDRequired = "User ID is required"
)

var (
	nameColumnCandidates   = []string{"name", "customer name", "client name", "user name", "user"}
	mobileColumnCandidates = []string{"mobile number", "mobile", "phone", "contact"}
	userIDColumnCandidates = []string{"user id", "userid", "user_id"}
)

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// ValidateRow checks the minimally required fields for the detected type.
// Protect and Settlement need a name and a mobile of at least 10 digits;
// Nexus needs a name and a user id (mobile optional for leads).
func ValidateRow(row Row, typ records.RecordType) Validation {
	var errs []string

	name, _ := ResolveColumn(row, nameColumnCandidates...)
	if trimAll(name) == "" {
		errs = append(errs, errNameRequired)
	}

	if typ == records.TypeNexus {
		userID, _ := ResolveColumn(row, userIDColumnCandidates...)
		if trimAll(userID) == "" {
			errs = append(errs, errUserIDRequired)
		}
	} else {
		mobile, _ := ResolveColumn(row, mobileColumnCandidates...)
		if digitCount(mobile) < 10 {
			errs = append(errs, errMobileRequired)
		}
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}

func trimAll(s string) string {
	return normalizeHeader(s)
}
