package dash

import (
	"net/http"
	"time"

	"RecoveryDesk/api"
	"RecoveryDesk/api/records"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetDashboardStatsHandler aggregates the full collection on demand. The
// collection is small enough that recomputing per request beats caching.
func GetDashboardStatsHandler(store *records.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := store.All(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		history, err := store.UploadHistory(r.Context())
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		api.RespondWithPayload(w, true, "", ComputeStats(recs, history, time.Now()))
	}
}

// DashService exposes the dashboard aggregate on its own port.
type DashService struct {
	name string
	pool *pgxpool.Pool
}

func NewDashService(pool *pgxpool.Pool) *DashService {
	return &DashService{name: "dash", pool: pool}
}

func (s *DashService) Name() string { return s.name }

func (s *DashService) Start() error {
	go StartDashService(s.pool)
	return nil
}

func (s *DashService) Stop() error { return nil }

func StartDashService(pool *pgxpool.Pool) {
	store := records.NewStore(pool)

	r := mux.NewRouter()
	r.HandleFunc("/dash/stats", GetDashboardStatsHandler(store)).Methods(http.MethodGet)

	api.LogInfo("dash service listening on :4143")
	if err := http.ListenAndServe(":4143", r); err != nil {
		api.LogError("dash service: %v", err)
	}
}
