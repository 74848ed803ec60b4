package ingest

import (
	"strings"
	"time"

	"RecoveryDesk/api/constants"
	"RecoveryDesk/api/records"

	"github.com/google/uuid"
)

// newBase seeds the common fields every parser fills: fresh id, default
// status/stage, resolved partner and the mandatory "Record Created"
// activity entry.
func newBase(typ records.RecordType, row Row, filename string, partnerOverride records.Partner, user string) records.RecordBase {
	uploadedFrom := filename
	if strings.TrimSpace(uploadedFrom) == "" {
		uploadedFrom = "Manual Entry"
	}
	if user == "" {
		user = "system"
	}
	name, _ := ResolveColumn(row, nameColumnCandidates...)
	mobile, _ := ResolveColumn(row, mobileColumnCandidates...)

	return records.RecordBase{
		ID:           records.NewRecordID(typ),
		Type:         typ,
		Partner:      ResolvePartner(row, filename, partnerOverride),
		Status:       records.DefaultStatus,
		Stage:        records.DefaultStage,
		Name:         strings.TrimSpace(name),
		Mobile:       strings.TrimSpace(mobile),
		UploadedFrom: uploadedFrom,
		UploadedAt:   records.NowISO(),
		Remarks:      []records.Remark{},
		ActivityLog: []records.ActivityEntry{{
			ID:        uuid.NewString(),
			Action:    records.ActionRecordCreated,
			Details:   "Imported from " + uploadedFrom,
			Timestamp: records.NowISO(),
			User:      user,
		}},
	}
}

// ParseRow dispatches a validated row to the parser for the detected type.
func ParseRow(typ records.RecordType, row Row, filename string, partnerOverride records.Partner, user string) records.Record {
	switch typ {
	case records.TypeSettlement:
		return ParseSettlementRow(row, filename, partnerOverride, user)
	case records.TypeNexus:
		return ParseNexusRow(row, filename, partnerOverride, user)
	default:
		return ParseProtectRow(row, filename, partnerOverride, user)
	}
}

func todayLocal() string {
	return time.Now().Format(constants.DateFormat)
}
