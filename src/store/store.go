package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// Appointment is one persisted booking record.
type Appointment struct {
	ID          int64
	PatientName string
	PhoneNumber string
	Reason      string
	StartTime   time.Time
	Canceled    bool
	CreatedAt   time.Time
}

// Store persists appointment records in SQLite.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the SQLite database at path and runs migrations.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")
	_, _ = db.Exec("PRAGMA busy_timeout = 5000")

	s := &Store{db: db, logger: logger.With().Str("component", "store").Logger()}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create inserts a new appointment and returns it with ID and CreatedAt set.
func (s *Store) Create(ctx context.Context, a Appointment) (Appointment, error) {
	a.CreatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments(patient_name, phone_number, reason, start_time, canceled, created_at)
		 VALUES(?,?,?,?,0,?)`,
		a.PatientName, nullStr(a.PhoneNumber), nullStr(a.Reason),
		a.StartTime.Format(time.RFC3339), a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Appointment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Appointment{}, err
	}
	a.ID = id
	s.logger.Info().Int64("id", id).Str("patient", a.PatientName).Msg("appointment created")
	return a, nil
}

// CancelByPatientDate marks all non-canceled appointments for the patient
// on the given day as canceled and returns the affected records.
func (s *Store) CancelByPatientDate(ctx context.Context, patientName string, day time.Time) ([]Appointment, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	appointments, err := s.query(ctx,
		`SELECT id, patient_name, phone_number, reason, start_time, canceled, created_at
		 FROM appointments
		 WHERE patient_name = ? AND start_time >= ? AND start_time < ? AND canceled = 0
		 ORDER BY start_time ASC`,
		patientName, dayStart.Format(time.RFC3339), dayEnd.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for i := range appointments {
		if _, err := tx.ExecContext(ctx,
			`UPDATE appointments SET canceled = 1 WHERE id = ?`, appointments[i].ID); err != nil {
			return nil, err
		}
		appointments[i].Canceled = true
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("patient", patientName).
		Int("count", len(appointments)).
		Msg("appointments canceled")
	return appointments, nil
}

// ListByDate returns non-canceled appointments on the given day, ordered by start time.
func (s *Store) ListByDate(ctx context.Context, day time.Time) ([]Appointment, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	return s.query(ctx,
		`SELECT id, patient_name, phone_number, reason, start_time, canceled, created_at
		 FROM appointments
		 WHERE canceled = 0 AND start_time >= ? AND start_time < ?
		 ORDER BY start_time ASC`,
		dayStart.Format(time.RFC3339), dayEnd.Format(time.RFC3339),
	)
}

// PurgeCanceled deletes canceled appointments older than the cutoff.
// Returns the number of rows removed.
func (s *Store) PurgeCanceled(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM appointments WHERE canceled = 1 AND start_time < ?`,
		olderThan.Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int64("purged", n).Msg("purged canceled appointments")
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Appointment, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var a Appointment
		var phone, reason sql.NullString
		var startTime, createdAt string
		var canceled int
		if err := rows.Scan(&a.ID, &a.PatientName, &phone, &reason, &startTime, &canceled, &createdAt); err != nil {
			return nil, err
		}
		a.PhoneNumber = phone.String
		a.Reason = reason.String
		a.Canceled = canceled != 0
		if a.StartTime, err = time.Parse(time.RFC3339, startTime); err != nil {
			return nil, fmt.Errorf("parse start_time %q: %w", startTime, err)
		}
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
