package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

// Store persists canonical records and upload history in Postgres. Records
// are stored as JSONB documents keyed by id, with the discriminating
// columns lifted out for cheap server-side filtering and bulk deletes.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the backing tables when they do not exist yet.
// Statements run one at a time; pgx's extended protocol rejects batches.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id          TEXT PRIMARY KEY,
			record_type TEXT NOT NULL,
			partner     TEXT NOT NULL,
			status      TEXT NOT NULL,
			doc         JSONB NOT NULL,
			uploaded_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS upload_history (
			id           TEXT PRIMARY KEY,
			file_name    TEXT NOT NULL,
			uploaded_at  TEXT NOT NULL,
			record_type  TEXT NOT NULL,
			partner      TEXT NOT NULL,
			total_rows   INT NOT NULL,
			valid_rows   INT NOT NULL,
			invalid_rows INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS npa_snapshots (
			day           TEXT PRIMARY KEY,
			npa_count     INT NOT NULL,
			total_records INT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) All(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `SELECT record_type, doc FROM records ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var typ RecordType
		var doc []byte
		if err := rows.Scan(&typ, &doc); err != nil {
			return nil, err
		}
		rec, err := Decode(typ, doc)
		if err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var typ RecordType
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT record_type, doc FROM records WHERE id = $1`, id).Scan(&typ, &doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return Decode(typ, doc)
}

// Insert writes a batch of freshly parsed records in one round trip.
func (s *Store) Insert(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	copyRows := make([][]interface{}, 0, len(recs))
	for _, rec := range recs {
		doc, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", rec.Base().ID, err)
		}
		b := rec.Base()
		copyRows = append(copyRows, []interface{}{b.ID, string(b.Type), string(b.Partner), b.Status, doc, b.UploadedAt})
	}
	_, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{"records"},
		[]string{"id", "record_type", "partner", "status", "doc", "uploaded_at"},
		pgx.CopyFromRows(copyRows),
	)
	if err != nil {
		return fmt.Errorf("stage records: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, rec Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	b := rec.Base()
	tag, err := s.pool.Exec(ctx,
		`UPDATE records SET partner = $2, status = $3, doc = $4 WHERE id = $1`,
		b.ID, string(b.Partner), b.Status, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM records WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) InsertUploadHistory(ctx context.Context, h UploadHistory) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO upload_history (id, file_name, uploaded_at, record_type, partner, total_rows, valid_rows, invalid_rows)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.FileName, h.UploadedAt, string(h.RecordType), string(h.Partner), h.TotalRows, h.ValidRows, h.InvalidRows)
	return err
}

func (s *Store) UploadHistory(ctx context.Context) ([]UploadHistory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, file_name, uploaded_at, record_type, partner, total_rows, valid_rows, invalid_rows
		FROM upload_history ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UploadHistory, 0)
	for rows.Next() {
		var h UploadHistory
		var typ, partner string
		if err := rows.Scan(&h.ID, &h.FileName, &h.UploadedAt, &typ, &partner, &h.TotalRows, &h.ValidRows, &h.InvalidRows); err != nil {
			return nil, err
		}
		h.RecordType = RecordType(typ)
		h.Partner = Partner(partner)
		out = append(out, h)
	}
	return out, rows.Err()
}

// PruneUploadHistory removes entries older than the retention window.
func (s *Store) PruneUploadHistory(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM upload_history WHERE uploaded_at::timestamptz < now() - make_interval(days => $1)`,
		retentionDays)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
