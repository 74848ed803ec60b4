package records

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"RecoveryDesk/api"
	"RecoveryDesk/api/constants"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetRecordsHandler returns the full record collection.
func GetRecordsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := store.All(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", recs)
	}
}

// FilterRecordsHandler loads the collection and applies the predicate
// engine to the posted options.
func FilterRecordsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts FilterOptions
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		recs, err := store.All(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", Filter(recs, opts, time.Now()))
	}
}

// CreateRecordHandler accepts a manually-entered record in the canonical
// shape, synthesizes the creation metadata and persists it.
func CreateRecordHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		var probe struct {
			Type RecordType `json:"type"`
			User string     `json:"user_id"`
		}
		if err := json.Unmarshal(body, &probe); err != nil || probe.Type == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		rec, err := Decode(probe.Type, body)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		b := rec.Base()
		b.ID = NewRecordID(probe.Type)
		if b.Status == "" {
			b.Status = DefaultStatus
		}
		if b.Stage == "" {
			b.Stage = DefaultStage
		}
		if b.Partner == "" {
			b.Partner = PartnerOther
		}
		b.UploadedFrom = "Manual Entry"
		b.UploadedAt = NowISO()
		b.Remarks = []Remark{}
		b.ActivityLog = nil
		b.AppendActivity(ActionRecordCreated, "Created manually", probe.User)

		if err := store.Insert(r.Context(), []Record{rec}); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", rec)
	}
}

// GetRecordHandler returns one record by id.
func GetRecordHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		rec, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				api.RespondWithError(w, http.StatusNotFound, constants.ErrRecordNotFound)
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", rec)
	}
}

// UpdateRecordHandler replaces an existing record's editable fields. The
// id, type and creation metadata of the stored record win over whatever
// the client sent; the update is recorded in the activity log.
func UpdateRecordHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		existing, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				api.RespondWithError(w, http.StatusNotFound, constants.ErrRecordNotFound)
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		var probe struct {
			User string `json:"user_id"`
		}
		json.Unmarshal(body, &probe)

		eb := existing.Base()
		updated, err := Decode(eb.Type, body)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		ub := updated.Base()
		ub.ID = eb.ID
		ub.Type = eb.Type
		ub.UploadedFrom = eb.UploadedFrom
		ub.UploadedAt = eb.UploadedAt
		ub.Remarks = eb.Remarks
		ub.ActivityLog = eb.ActivityLog
		ub.AppendActivity(ActionRecordUpdated, "Record fields edited", probe.User)

		if err := store.Update(r.Context(), updated); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", updated)
	}
}

// UpdateStatusHandler changes status and/or stage and logs the transition.
func UpdateStatusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		var req struct {
			Status string `json:"status"`
			Stage  string `json:"stage"`
			User   string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || (req.Status == "" && req.Stage == "") {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		rec, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				api.RespondWithError(w, http.StatusNotFound, constants.ErrRecordNotFound)
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		b := rec.Base()
		details := ""
		if req.Status != "" && req.Status != b.Status {
			details = "Status: " + b.Status + " -> " + req.Status
			b.Status = req.Status
		}
		if req.Stage != "" && req.Stage != b.Stage {
			if details != "" {
				details += "; "
			}
			details += "Stage: " + b.Stage + " -> " + req.Stage
			b.Stage = req.Stage
		}
		if details != "" {
			b.AppendActivity(ActionStatusChanged, details, req.User)
			if err := store.Update(r.Context(), rec); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
		api.RespondWithPayload(w, true, "", rec)
	}
}

// AddRemarkHandler appends a remark and its audit entry.
func AddRemarkHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		var req struct {
			Text string `json:"text"`
			User string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		rec, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				api.RespondWithError(w, http.StatusNotFound, constants.ErrRecordNotFound)
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		b := rec.Base()
		remark := b.AppendRemark(req.Text, req.User)
		b.AppendActivity(ActionRemarkAdded, req.Text, req.User)
		if err := store.Update(r.Context(), rec); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", remark)
	}
}

// DeleteRecordHandler removes one record by id.
func DeleteRecordHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				api.RespondWithError(w, http.StatusNotFound, constants.ErrRecordNotFound)
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithResult(w, true, "")
	}
}

// BulkDeleteHandler removes a batch of records by id.
func BulkDeleteHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		n, err := store.BulkDelete(r.Context(), req.IDs)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", map[string]int64{"deleted": n})
	}
}

// RecomputeDPDHandler re-derives dpdGroup for all Protect records from the
// numeric reading of their DPD value. This is the only path that touches
// dpdGroup after parse time.
func RecomputeDPDHandler(store *Store, normalizeNumber func(string) float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := store.All(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		changed := 0
		for _, rec := range recs {
			p, ok := rec.(*ProtectRecord)
			if !ok {
				continue
			}
			group := DPDBucket(normalizeNumber(p.DPD))
			if group == p.DPDGroup {
				continue
			}
			p.DPDGroup = group
			if err := store.Update(r.Context(), p); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			changed++
		}
		api.RespondWithPayload(w, true, "", map[string]int{"recomputed": changed})
	}
}

// GetUploadHistoryHandler lists import batches, newest first.
func GetUploadHistoryHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := store.UploadHistory(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", history)
	}
}

// NewUploadHistoryID returns a fresh id for an import batch.
func NewUploadHistoryID() string {
	return uuid.NewString()
}
