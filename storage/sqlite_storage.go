package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore persists the appointment log in a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string, log *zap.SugaredLogger) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Infow("sqlite store ready", "path", dbPath)
	return &SQLiteStore{db: db, log: log}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS appointments (
			appointment_id TEXT PRIMARY KEY,
			chat_id        INTEGER NOT NULL,
			service_name   TEXT NOT NULL,
			date           TEXT NOT NULL,
			time           TEXT NOT NULL,
			client_name    TEXT NOT NULL,
			status         TEXT NOT NULL,
			price          REAL NOT NULL DEFAULT 0.0,
			created_at     TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create appointments table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_appointments_chat ON appointments(chat_id, created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create chat index: %w", err)
	}
	return nil
}

// SaveAppointment inserts or replaces a record, keyed by appointment id, so
// a backend retry that returns the same appointment never duplicates it.
func (s *SQLiteStore) SaveAppointment(rec Record) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO appointments
			(appointment_id, chat_id, service_name, date, time, client_name, status, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.AppointmentID, rec.ChatID, rec.ServiceName, rec.Date, rec.Time,
		rec.ClientName, rec.Status, rec.Price, rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save appointment %s: %w", rec.AppointmentID, err)
	}
	return nil
}

// ListByChat returns the records created from one chat, newest first.
func (s *SQLiteStore) ListByChat(chatID int64) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT appointment_id, chat_id, service_name, date, time, client_name, status, price, created_at
		FROM appointments
		WHERE chat_id = ?
		ORDER BY created_at DESC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments for chat %d: %w", chatID, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		if err := rows.Scan(
			&rec.AppointmentID, &rec.ChatID, &rec.ServiceName, &rec.Date, &rec.Time,
			&rec.ClientName, &rec.Status, &rec.Price, &createdAt,
		); err != nil {
			s.log.Warnw("failed to scan appointment row, skipping", "error", err)
			continue
		}
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
