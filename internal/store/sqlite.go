package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/seenimoa/bureaulens/pkg/models"
)

// SQLite persists report runs to a SQLite database.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the database and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so report reads don't block concurrent recording.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", path).Info("report store opened")
	return s, nil
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS report_runs (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id             TEXT NOT NULL UNIQUE,
			customer_id        INTEGER NOT NULL,
			generated_at       INTEGER NOT NULL,
			total_tradelines   INTEGER,
			live_tradelines    INTEGER,
			closed_tradelines  INTEGER,
			total_sanctioned   REAL,
			total_outstanding  REAL,
			unsecured_outstanding REAL,
			has_delinquency    INTEGER,
			max_dpd            INTEGER,
			findings_count     INTEGER,
			warnings_count     INTEGER,
			payload            TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_customer ON report_runs(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_generated ON report_runs(generated_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record persists one report run, with the full payload as JSON for diffing.
func (s *SQLite) Record(report *models.BureauReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	summary := report.ExecutiveSummary
	var maxDPD any
	if summary.MaxDPD != nil {
		maxDPD = *summary.MaxDPD
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO report_runs (
			run_id, customer_id, generated_at,
			total_tradelines, live_tradelines, closed_tradelines,
			total_sanctioned, total_outstanding, unsecured_outstanding,
			has_delinquency, max_dpd, findings_count, warnings_count, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Meta.RunID,
		report.Meta.CustomerID,
		report.Meta.GeneratedAt.Unix(),
		summary.TotalTradelines,
		summary.LiveTradelines,
		summary.ClosedTradelines,
		summary.TotalSanctioned,
		summary.TotalOutstanding,
		summary.UnsecuredOutstanding,
		summary.HasDelinquency,
		maxDPD,
		len(report.KeyFindings),
		len(report.Warnings),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert report run: %w", err)
	}
	return nil
}

// RunCount returns the number of recorded runs for a customer.
func (s *SQLite) RunCount(customerID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM report_runs WHERE customer_id = ?`, customerID,
	).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
