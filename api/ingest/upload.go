package ingest

import (
	"io"
	"net/http"
	"strings"

	"RecoveryDesk/api"
	"RecoveryDesk/api/constants"
	"RecoveryDesk/api/records"
	"RecoveryDesk/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const maxUploadBytes = 32 << 20

// knownHeaders is the canonical header vocabulary across all three record
// kinds, used to flag and suggest fixes for unmapped preview columns.
var knownHeaders = []string{
	"name", "customer name", "mobile number", "mobile", "phone",
	"user id", "email", "partner", "source",
	"nexus purchase date", "form filled date", "pan number", "plan",
	"institution", "account number", "account type", "date opened",
	"emi date", "emi amount", "dpd", "current dpd",
	"created date", "debt type", "creditor name", "credit card no",
	"loan acc no", "loan amount", "due amt", "due date",
	"emi bounced", "legal notice", "recommended amt", "customer wish amt",
	"transaction date & time", "request raised",
}

func headerMapped(h string) bool {
	lh := strings.ToLower(normalizeHeader(h))
	if lh == "" {
		return true
	}
	for _, k := range knownHeaders {
		if strings.Contains(lh, k) || strings.Contains(k, lh) {
			return true
		}
	}
	return false
}

// PreviewRow is one sheet row in the preview response, carrying its
// validation verdict so the client can render invalid rows greyed out.
type PreviewRow struct {
	Index   int             `json:"index"`
	Cells   Row             `json:"cells"`
	Partner records.Partner `json:"partner"`
	Valid   bool            `json:"valid"`
	Errors  []string        `json:"errors,omitempty"`
}

// HeaderSuggestion pairs an unmapped column with its closest known header.
type HeaderSuggestion struct {
	Header     string `json:"header"`
	Suggestion string `json:"suggestion,omitempty"`
}

type previewResponse struct {
	FileName     string             `json:"fileName"`
	DetectedType records.RecordType `json:"detectedType"`
	Headers      []string           `json:"headers"`
	TotalRows    int                `json:"totalRows"`
	ValidRows    int                `json:"validRows"`
	InvalidRows  int                `json:"invalidRows"`
	Rows         []PreviewRow       `json:"rows"`
	Unmapped     []HeaderSuggestion `json:"unmappedHeaders,omitempty"`
}

func readUpload(r *http.Request) ([]byte, string, records.Partner, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", "", err
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}
	override := records.Partner(strings.ToLower(strings.TrimSpace(r.FormValue("partner"))))
	if override != records.PartnerSayyam && override != records.PartnerSnapmint && override != records.PartnerOther {
		override = ""
	}
	return data, hdr.Filename, override, nil
}

func typeOverride(r *http.Request, headers []string) records.RecordType {
	switch records.RecordType(strings.ToLower(strings.TrimSpace(r.FormValue("type")))) {
	case records.TypeProtect:
		return records.TypeProtect
	case records.TypeSettlement:
		return records.TypeSettlement
	case records.TypeNexus:
		return records.TypeNexus
	}
	return DetectType(headers)
}

// PreviewUploadHandler decodes a spreadsheet, detects its record kind and
// returns every row with its validation verdict. Nothing is persisted.
func PreviewUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, filename, override, err := readUpload(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFilesUploaded)
			return
		}
		grid, err := DecodeSpreadsheet(data, filename)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		headers, rows := RowsFromSheet(grid)
		typ := typeOverride(r, headers)

		resp := previewResponse{
			FileName:     filename,
			DetectedType: typ,
			Headers:      headers,
			TotalRows:    len(rows),
			Rows:         make([]PreviewRow, 0, len(rows)),
		}
		for i, row := range rows {
			v := ValidateRow(row, typ)
			if v.Valid {
				resp.ValidRows++
			} else {
				resp.InvalidRows++
			}
			resp.Rows = append(resp.Rows, PreviewRow{
				Index:   i,
				Cells:   row,
				Partner: ResolvePartner(row, filename, override),
				Valid:   v.Valid,
				Errors:  v.Errors,
			})
		}
		for _, h := range headers {
			if !headerMapped(h) {
				resp.Unmapped = append(resp.Unmapped, HeaderSuggestion{
					Header:     h,
					Suggestion: SuggestHeader(h, knownHeaders),
				})
			}
		}
		api.RespondWithPayload(w, true, "", resp)
	}
}

// CommitUploadHandler decodes the file again, parses every valid row into a
// canonical record, persists the batch and records an upload history entry.
// Invalid rows are skipped, never imported.
func CommitUploadHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, filename, override, err := readUpload(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFilesUploaded)
			return
		}
		grid, err := DecodeSpreadsheet(data, filename)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		headers, rows := RowsFromSheet(grid)
		typ := typeOverride(r, headers)
		user := strings.TrimSpace(r.FormValue("user_id"))

		store := records.NewStore(pool)
		parsed := make([]records.Record, 0, len(rows))
		invalid := 0
		for _, row := range rows {
			if v := ValidateRow(row, typ); !v.Valid {
				invalid++
				continue
			}
			parsed = append(parsed, ParseRow(typ, row, filename, override, user))
		}

		for start := 0; start < len(parsed); start += config.BatchSize {
			end := start + config.BatchSize
			if end > len(parsed) {
				end = len(parsed)
			}
			if err := store.Insert(r.Context(), parsed[start:end]); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		batchPartner := override
		if batchPartner == "" {
			if len(parsed) > 0 {
				batchPartner = parsed[0].Base().Partner
			} else {
				batchPartner = records.PartnerOther
			}
		}
		history := records.UploadHistory{
			ID:          records.NewUploadHistoryID(),
			FileName:    filename,
			UploadedAt:  records.NowISO(),
			RecordType:  typ,
			Partner:     batchPartner,
			TotalRows:   len(rows),
			ValidRows:   len(parsed),
			InvalidRows: invalid,
		}
		if err := store.InsertUploadHistory(r.Context(), history); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		api.LogInfo("imported %d/%d rows from %s as %s", len(parsed), len(rows), filename, typ)
		api.RespondWithPayload(w, true, "", map[string]interface{}{
			"imported": len(parsed),
			"skipped":  invalid,
			"history":  history,
		})
	}
}
