package jobs

import (
	"context"
	"fmt"
	"time"

	"RecoveryDesk/api"
	"RecoveryDesk/api/constants"
	"RecoveryDesk/api/dash"
	"RecoveryDesk/api/records"
	"RecoveryDesk/internal/config"
	"RecoveryDesk/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// CronService owns the scheduled background work: the nightly NPA snapshot
// and upload-history retention.
type CronService struct {
	name          string
	pool          *pgxpool.Pool
	schedule      string
	retentionDays int
	cron          *cron.Cron
}

func NewCronService(pool *pgxpool.Pool, schedule string, retentionDays int) *CronService {
	if schedule == "" {
		schedule = config.DefaultNPASnapshotSchedule
	}
	if retentionDays <= 0 {
		retentionDays = config.DefaultHistoryRetentionDays
	}
	return &CronService{
		name:          "cron",
		pool:          pool,
		schedule:      schedule,
		retentionDays: retentionDays,
	}
}

func (s *CronService) Name() string { return s.name }

func (s *CronService) Start() error {
	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		loc = time.Local
	}
	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(s.schedule, s.runNightly); err != nil {
		return err
	}
	s.cron.Start()
	api.LogInfo("cron service started, schedule %q", s.schedule)
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

func (s *CronService) runNightly() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.snapshotNPA(ctx); err != nil {
		api.LogError("npa snapshot: %v", err)
	}
	store := records.NewStore(s.pool)
	pruned, err := store.PruneUploadHistory(ctx, s.retentionDays)
	if err != nil {
		api.LogError("history retention: %v", err)
	} else if pruned > 0 && logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("pruned %d upload history rows", pruned))
	}
}

// snapshotNPA records one row per day so the NPA trend survives record
// edits and deletions.
func (s *CronService) snapshotNPA(ctx context.Context) error {
	store := records.NewStore(s.pool)
	recs, err := store.All(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	stats := dash.ComputeStats(recs, nil, now)
	_, err = s.pool.Exec(ctx, `
		INSERT INTO npa_snapshots (day, npa_count, total_records)
		VALUES ($1, $2, $3)
		ON CONFLICT (day) DO UPDATE SET npa_count = $2, total_records = $3`,
		now.Format(constants.DateFormat), stats.NPAToday, stats.TotalRecords)
	if err == nil && logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("npa snapshot: %d of %d records", stats.NPAToday, stats.TotalRecords))
	}
	return err
}
