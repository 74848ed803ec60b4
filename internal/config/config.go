package config

const (
	DefaultTimeZone = "Asia/Kolkata"
	BatchSize       = 500

	// NPA classification: a reference date this many days old (or older)
	// marks the record as a non-performing asset.
	NPAThresholdDays = 90

	// Cron defaults (overridable from services.yaml)
	DefaultNPASnapshotSchedule  = "0 1 * * *"
	DefaultHistoryRetentionDays = 90
)
