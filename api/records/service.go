package records

import (
	"context"
	"net/http"

	"RecoveryDesk/api"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordsService exposes the record CRUD and filter API on its own port.
// The number normalizer is injected by the wiring layer so this package
// stays independent of the ingestion pipeline.
type RecordsService struct {
	name            string
	pool            *pgxpool.Pool
	normalizeNumber func(string) float64
}

func NewRecordsService(pool *pgxpool.Pool, normalizeNumber func(string) float64) *RecordsService {
	return &RecordsService{name: "records", pool: pool, normalizeNumber: normalizeNumber}
}

func (s *RecordsService) Name() string { return s.name }

func (s *RecordsService) Start() error {
	go StartRecordsService(s.pool, s.normalizeNumber)
	return nil
}

func (s *RecordsService) Stop() error { return nil }

// StartRecordsService registers the record routes and blocks serving them.
func StartRecordsService(pool *pgxpool.Pool, normalizeNumber func(string) float64) {
	store := NewStore(pool)
	if err := store.EnsureSchema(context.Background()); err != nil {
		api.LogError("records schema: %v", err)
		return
	}

	r := mux.NewRouter()
	r.HandleFunc("/records", GetRecordsHandler(store)).Methods(http.MethodGet)
	r.HandleFunc("/records", CreateRecordHandler(store)).Methods(http.MethodPost)
	r.HandleFunc("/records/filter", FilterRecordsHandler(store)).Methods(http.MethodPost)
	r.HandleFunc("/records/bulk-delete", BulkDeleteHandler(store)).Methods(http.MethodPost)
	r.HandleFunc("/records/recompute-dpd", RecomputeDPDHandler(store, normalizeNumber)).Methods(http.MethodPost)
	r.HandleFunc("/records/{id}", GetRecordHandler(store)).Methods(http.MethodGet)
	r.HandleFunc("/records/{id}", UpdateRecordHandler(store)).Methods(http.MethodPut)
	r.HandleFunc("/records/{id}", DeleteRecordHandler(store)).Methods(http.MethodDelete)
	r.HandleFunc("/records/{id}/remarks", AddRemarkHandler(store)).Methods(http.MethodPost)
	r.HandleFunc("/records/{id}/status", UpdateStatusHandler(store)).Methods(http.MethodPost)
	r.HandleFunc("/upload-history", GetUploadHistoryHandler(store)).Methods(http.MethodGet)

	api.LogInfo("records service listening on :5143")
	if err := http.ListenAndServe(":5143", r); err != nil {
		api.LogError("records service: %v", err)
	}
}
