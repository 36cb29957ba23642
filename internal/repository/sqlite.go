package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/preemiealert/go-preemie-alerts/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the alert database and runs migrations.
// A single connection serializes writers so created_at/rowid order always
// matches commit order as seen by readers.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s := &SQLiteDB{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS alerts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			municipality TEXT NOT NULL,
			gestational_weeks INTEGER NOT NULL,
			urgency_tier TEXT NOT NULL,
			occurred_at DATETIME NOT NULL,
			hospital TEXT NOT NULL,
			birth_date TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
		CREATE INDEX IF NOT EXISTS idx_alerts_occurred_at ON alerts(occurred_at);
		CREATE INDEX IF NOT EXISTS idx_alerts_urgency_tier ON alerts(urgency_tier);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Insert(ctx context.Context, a *models.AlertRecord) (int64, error) {
	a.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (municipality, gestational_weeks, urgency_tier, occurred_at, hospital, birth_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Municipality, a.GestationalWeeks, string(a.UrgencyTier),
		a.OccurredAt.UTC(), a.Hospital, a.BirthDate, a.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: insert: %v", ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert id: %v", ErrStorageUnavailable, err)
	}
	a.ID = id
	return id, nil
}

func (s *SQLiteDB) ListRecent(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	return s.ListFiltered(ctx, Filter{Limit: limit})
}

func (s *SQLiteDB) ListFiltered(ctx context.Context, f Filter) ([]models.AlertRecord, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}

	var (
		conds  []string
		params []any
	)
	if f.Window != nil {
		conds = append(conds, "occurred_at >= ?")
		params = append(params, f.Window.Cutoff(time.Now().UTC()))
	}
	if f.Tier != nil {
		conds = append(conds, "urgency_tier = ?")
		params = append(params, string(*f.Tier))
	}
	if f.Municipality != nil {
		conds = append(conds, "municipality = ?")
		params = append(params, *f.Municipality)
	}

	query := "SELECT id, municipality, gestational_weeks, urgency_tier, occurred_at, hospital, birth_date, created_at FROM alerts"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	params = append(params, f.Limit)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var alerts []models.AlertRecord
	for rows.Next() {
		var a models.AlertRecord
		var tier string
		if err := rows.Scan(&a.ID, &a.Municipality, &a.GestationalWeeks, &tier,
			&a.OccurredAt, &a.Hospital, &a.BirthDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrStorageUnavailable, err)
		}
		a.UrgencyTier = models.UrgencyTier(tier)
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrStorageUnavailable, err)
	}

	return alerts, nil
}

func (s *SQLiteDB) CountByTier(ctx context.Context) (map[models.UrgencyTier]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT urgency_tier, COUNT(*) FROM alerts GROUP BY urgency_tier")
	if err != nil {
		return nil, fmt.Errorf("%w: count: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	counts := make(map[models.UrgencyTier]int)
	for rows.Next() {
		var tier string
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrStorageUnavailable, err)
		}
		counts[models.UrgencyTier(tier)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrStorageUnavailable, err)
	}

	return counts, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
