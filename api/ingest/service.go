package ingest

import (
	"net/http"

	"RecoveryDesk/api"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IngestService exposes the spreadsheet preview/commit API on its own port.
type IngestService struct {
	name string
	pool *pgxpool.Pool
}

func NewIngestService(pool *pgxpool.Pool) *IngestService {
	return &IngestService{name: "ingest", pool: pool}
}

func (s *IngestService) Name() string { return s.name }

func (s *IngestService) Start() error {
	go StartIngestService(s.pool)
	return nil
}

func (s *IngestService) Stop() error { return nil }

// StartIngestService registers the ingest routes and blocks serving them.
func StartIngestService(pool *pgxpool.Pool) {
	r := mux.NewRouter()
	r.HandleFunc("/ingest/preview", PreviewUploadHandler()).Methods(http.MethodPost)
	r.HandleFunc("/ingest/commit", CommitUploadHandler(pool)).Methods(http.MethodPost)

	api.LogInfo("ingest service listening on :6143")
	if err := http.ListenAndServe(":6143", r); err != nil {
		api.LogError("ingest service: %v", err)
	}
}
