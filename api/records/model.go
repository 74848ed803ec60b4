package records

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordType discriminates the three canonical record kinds.
type RecordType string

const (
	TypeProtect    RecordType = "protect"
	TypeSettlement RecordType = "settlement"
	TypeNexus      RecordType = "nexus"
)

// Partner is the referring business channel for a record.
type Partner string

const (
	PartnerSayyam   Partner = "sayyam"
	PartnerSnapmint Partner = "snapmint"
	PartnerOther    Partner = "other"
)

// TriState models yes/no/unset for the settlement editable fields.
// Unset is deliberately distinct from No: an imported row starts Unset
// and only a user edit moves it to Yes or No.
type TriState string

const (
	TriUnset TriState = ""
	TriYes   TriState = "yes"
	TriNo    TriState = "no"
)

const (
	DefaultStatus = "No Action Taken"
	DefaultStage  = "New"

	ActionRecordCreated = "Record Created"
	ActionRecordUpdated = "Record Updated"
	ActionStatusChanged = "Status Changed"
	ActionRemarkAdded   = "Remark Added"
)

// DPD buckets, closed upper bounds (30 is "0-30", 31 is "31-60").
const (
	DPDGroup0To30   = "0-30"
	DPDGroup31To60  = "31-60"
	DPDGroup61To90  = "61-90"
	DPDGroup91To180 = "91-180"
	DPDGroup180Plus = "180+"
)

// DPDBucket maps a numeric days-past-due value into its risk bucket.
// Callers normalize non-numeric DPD strings to 0 first, so garbled input
// lands in "0-30" (kept as-is; see DESIGN.md).
func DPDBucket(dpd float64) string {
	switch {
	case dpd <= 30:
		return DPDGroup0To30
	case dpd <= 60:
		return DPDGroup31To60
	case dpd <= 90:
		return DPDGroup61To90
	case dpd <= 180:
		return DPDGroup91To180
	default:
		return DPDGroup180Plus
	}
}

type Remark struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	CreatedBy string `json:"createdBy"`
}

type ActivityEntry struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
}

type PaymentPart struct {
	ID         string  `json:"id"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	IsReceived bool    `json:"isReceived,omitempty"`
}

// RecordBase carries the fields shared by all three variants. ActivityLog
// is append-only and always holds at least the seed "Record Created" entry.
type RecordBase struct {
	ID           string          `json:"id"`
	Type         RecordType      `json:"type"`
	Partner      Partner         `json:"partner"`
	Status       string          `json:"status"`
	Stage        string          `json:"stage"`
	Name         string          `json:"name"`
	Mobile       string          `json:"mobile"`
	UploadedFrom string          `json:"uploadedFrom"`
	UploadedAt   string          `json:"uploadedAt"`
	Remarks      []Remark        `json:"remarks"`
	ActivityLog  []ActivityEntry `json:"activityLog"`
}

// Record is the closed sum over the three variants. Consumers switch on
// the concrete type; no other implementations exist.
type Record interface {
	Base() *RecordBase
}

type ProtectRecord struct {
	RecordBase
	NexusPurchaseDate string        `json:"nexusPurchaseDate"`
	FormFilledDate    string        `json:"formFilledDate"`
	PANNumber         string        `json:"panNumber"`
	Plan              string        `json:"plan"`
	Institution       string        `json:"institution"`
	AccountNumber     string        `json:"accountNumber"`
	AccountType       string        `json:"accountType"`
	DateOpened        string        `json:"dateOpened"`
	EMIDate           string        `json:"emiDate"`
	EMIAmount         float64       `json:"emiAmount"`
	DPD               string        `json:"dpd"`
	CurrentDPD        string        `json:"currentDpd"`
	DPDGroup          string        `json:"dpdGroup"`
	PaymentParts      []PaymentPart `json:"paymentParts,omitempty"`
	PartPaymentAmount float64       `json:"partPaymentAmount,omitempty"`
	SkippedEMIDate    string        `json:"skippedEmiDate,omitempty"`
	NextFollowUpDate  string        `json:"nextFollowUpDate,omitempty"`
	LastPaymentDate   string        `json:"lastPaymentDate,omitempty"`
}

func (r *ProtectRecord) Base() *RecordBase { return &r.RecordBase }

type SettlementRecord struct {
	RecordBase
	CreatedDate    string  `json:"createdDate"`
	FormFilledDate string  `json:"formFilledDate,omitempty"`
	DebtType       string  `json:"debtType"`
	LenderName     string  `json:"lenderName"`
	CreditCardNo   string  `json:"creditCardNo"`
	LoanAccNo      string  `json:"loanAccNo"`
	LoanAmount     float64 `json:"loanAmount"`
	DueAmt         float64 `json:"dueAmt"` // mirror of LoanAmount for older consumers
	DueDate        string  `json:"dueDate"`
	IsEMIBounced   bool    `json:"isEmiBounced"`
	IsLegalNotice  bool    `json:"isLegalNotice"`
	RecommendedAmt float64 `json:"recommendedAmt"`
	CustomerWishAmt float64 `json:"customerWishAmt"`
	DPD            string  `json:"dpd"` // static from import, not recomputed

	// Editable fields, all unset at parse time.
	LenderContact    string   `json:"lenderContact"`
	FundsAvailable   TriState `json:"fundsAvailable"`
	SettlementOption string   `json:"settlementOption"` // "", "settlement", "emi"
	EMIMonths        string   `json:"emiMonths"`        // "", "3", "6", "9"
	WhatsappReachout TriState `json:"whatsappReachout"`

	PaymentParts      []PaymentPart `json:"paymentParts,omitempty"`
	PartPaymentAmount float64       `json:"partPaymentAmount,omitempty"`
	NextFollowUpDate  string        `json:"nextFollowUpDate,omitempty"`
	LastPaymentDate   string        `json:"lastPaymentDate,omitempty"`
}

func (r *SettlementRecord) Base() *RecordBase { return &r.RecordBase }

type NexusRecord struct {
	RecordBase
	NexusPurchaseDate string `json:"nexusPurchaseDate"`
	// FormFilledDate holds either an ISO date, the literal sentinel "Yes"
	// (source sheets sometimes carry only a yes/no column), or "". Consumers
	// asking "is the request raised" must test non-emptiness, not date
	// validity. Kept for behavioral parity with the existing data.
	FormFilledDate string `json:"formFilledDate"`
	// TransactionTime keeps the full "YYYY-MM-DD HH:MM:SS" timestamp from
	// the source sheet when one was present; nexusPurchaseDate is its
	// day-level projection.
	TransactionTime string `json:"transactionTime,omitempty"`
	UserID          string `json:"userId"`
	Email           string `json:"email"`
}

func (r *NexusRecord) Base() *RecordBase { return &r.RecordBase }

// Decode unmarshals a stored document into its concrete variant.
func Decode(typ RecordType, doc []byte) (Record, error) {
	switch typ {
	case TypeProtect:
		var r ProtectRecord
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, err
		}
		return &r, nil
	case TypeSettlement:
		var r SettlementRecord
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, err
		}
		return &r, nil
	case TypeNexus:
		var r NexusRecord
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, err
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("unknown record type %q", typ)
	}
}

// NewRecordID synthesizes a collision-safe record id: the millisecond
// timestamp keeps ids roughly sortable, the uuid fragment keeps records
// created within the same millisecond distinct. Ids are immutable and
// never reused.
func NewRecordID(typ RecordType) string {
	return fmt.Sprintf("%s-%d-%s", typ, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NowISO is the canonical timestamp format for uploadedAt and activity
// entries.
func NowISO() string {
	return time.Now().Format(time.RFC3339)
}

// AppendActivity appends an audit entry; the activity log is append-only.
func (b *RecordBase) AppendActivity(action, details, user string) {
	if user == "" {
		user = "system"
	}
	b.ActivityLog = append(b.ActivityLog, ActivityEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		Timestamp: NowISO(),
		User:      user,
	})
}

// AppendRemark appends a remark; order is insertion order and the latest
// remark is the last element.
func (b *RecordBase) AppendRemark(text, user string) Remark {
	r := Remark{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: NowISO(),
		CreatedBy: user,
	}
	b.Remarks = append(b.Remarks, r)
	return r
}

// UploadHistory is one entry per import batch.
type UploadHistory struct {
	ID          string     `json:"id"`
	FileName    string     `json:"fileName"`
	UploadedAt  string     `json:"uploadedAt"`
	RecordType  RecordType `json:"recordType"`
	Partner     Partner    `json:"partner"`
	TotalRows   int        `json:"totalRows"`
	ValidRows   int        `json:"validRows"`
	InvalidRows int        `json:"invalidRows"`
}
