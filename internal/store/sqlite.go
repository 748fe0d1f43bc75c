package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleet-insights-go/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// ErrEmptySnapshot is returned by Load when nothing has been imported yet.
var ErrEmptySnapshot = errors.New("store: no imported records")

// Store persists the last imported record collection in SQLite.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// single writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	s := &Store{conn: conn}
	if err := s.initialize(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		position INTEGER PRIMARY KEY,
		month TEXT NOT NULL,
		vehicle TEXT NOT NULL,
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		fleet_group TEXT NOT NULL,
		total_distance REAL NOT NULL,
		loaded_distance REAL NOT NULL,
		average_raw TEXT NOT NULL,
		average_loaded_raw TEXT NOT NULL,
		average_num REAL NOT NULL,
		average_loaded_num REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS imports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_records_vehicle ON records(vehicle);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Save replaces the stored collection with records in one transaction and
// logs the import against source.
func (s *Store) Save(ctx context.Context, source string, records []types.Record) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records
		(position, month, vehicle, brand, model, fleet_group, total_distance, loaded_distance,
		 average_raw, average_loaded_raw, average_num, average_loaded_num)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			i, r.Month, r.Vehicle, r.Brand, r.Model, r.Group, r.TotalDistance, r.LoadedDistance,
			r.AverageRaw, r.AverageLoadedRaw, r.AverageNum, r.AverageLoadedNum,
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (source, record_count) VALUES (?, ?)`, source, len(records),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the stored collection in import order.
func (s *Store) Load(ctx context.Context) ([]types.Record, error) {
	var imports int64
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM imports`).Scan(&imports); err != nil {
		return nil, err
	}
	if imports == 0 {
		return nil, ErrEmptySnapshot
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT month, vehicle, brand, model, fleet_group, total_distance, loaded_distance,
		       average_raw, average_loaded_raw, average_num, average_loaded_num
		FROM records
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		var r types.Record
		err := rows.Scan(
			&r.Month, &r.Vehicle, &r.Brand, &r.Model, &r.Group, &r.TotalDistance, &r.LoadedDistance,
			&r.AverageRaw, &r.AverageLoadedRaw, &r.AverageNum, &r.AverageLoadedNum,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Import describes one Save call.
type Import struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	RecordCount int       `json:"record_count"`
	ImportedAt  time.Time `json:"imported_at"`
}

// LastImport returns the most recent import, or ErrEmptySnapshot.
func (s *Store) LastImport(ctx context.Context) (*Import, error) {
	var imp Import
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, source, record_count, imported_at
		FROM imports
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&imp.ID, &imp.Source, &imp.RecordCount, &imp.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmptySnapshot
	}
	if err != nil {
		return nil, err
	}
	return &imp, nil
}
