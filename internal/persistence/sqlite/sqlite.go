package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/slotshare/internal/persistence"
)

const schema = `
CREATE TABLE IF NOT EXISTS schedules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slots TEXT NOT NULL,
	timezone TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	selected_slots TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Storage provides SQLite-backed persistence for schedules.
type Storage struct {
	db *sql.DB
}

// Open establishes a database handle for the given DSN. The schema is not
// applied until Migrate is called.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}
	return &Storage{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate applies the schedules schema.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// CreateSchedule inserts a new schedule and returns it with the assigned id.
func (s *Storage) CreateSchedule(ctx context.Context, schedule persistence.Schedule) (persistence.Schedule, error) {
	slots, err := encodeSlots(schedule.Slots)
	if err != nil {
		return persistence.Schedule{}, err
	}

	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	if schedule.Status == "" {
		schedule.Status = persistence.StatusPending
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO schedules (slots, timezone, status, selected_slots, created_at, updated_at)
		VALUES (?, ?, ?, NULL, ?, ?)
	`,
		slots,
		schedule.Timezone,
		schedule.Status,
		schedule.CreatedAt.Format(time.RFC3339),
		schedule.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: insert schedule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: insert schedule id: %w", err)
	}
	schedule.ID = id
	schedule.SelectedSlots = nil
	return schedule, nil
}

// GetSchedule retrieves a schedule by id.
func (s *Storage) GetSchedule(ctx context.Context, id int64) (persistence.Schedule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slots, timezone, status, selected_slots, created_at, updated_at
		FROM schedules WHERE id = ?
	`, id)
	return scanSchedule(row)
}

// UpdateSelection stores the confirmed slots and status transition for an
// existing schedule.
func (s *Storage) UpdateSelection(ctx context.Context, id int64, selected []persistence.Slot, status string) (persistence.Schedule, error) {
	selectedJSON, err := encodeSlots(selected)
	if err != nil {
		return persistence.Schedule{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE schedules SET selected_slots = ?, status = ?, updated_at = ? WHERE id = ?
	`, selectedJSON, status, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: update selection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.Schedule{}, persistence.ErrNotFound
	}

	row := tx.QueryRowContext(ctx, `
		SELECT id, slots, timezone, status, selected_slots, created_at, updated_at
		FROM schedules WHERE id = ?
	`, id)
	schedule, err := scanSchedule(row)
	if err != nil {
		return persistence.Schedule{}, err
	}

	if err := tx.Commit(); err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: commit: %w", err)
	}
	return schedule, nil
}

// ListSchedules returns the schedules matching the given ids, newest first.
// Unknown ids are skipped.
func (s *Storage) ListSchedules(ctx context.Context, ids []int64) ([]persistence.Schedule, error) {
	schedules := make([]persistence.Schedule, 0, len(ids))
	for _, id := range ids {
		schedule, err := s.GetSchedule(ctx, id)
		if err != nil {
			if err == persistence.ErrNotFound {
				continue
			}
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	for i, j := 0, len(schedules)-1; i < j; i, j = i+1, j-1 {
		schedules[i], schedules[j] = schedules[j], schedules[i]
	}
	if len(schedules) == 0 {
		return nil, nil
	}
	return schedules, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (persistence.Schedule, error) {
	var (
		schedule   persistence.Schedule
		slotsJSON  string
		selected   sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(&schedule.ID, &slotsJSON, &schedule.Timezone, &schedule.Status, &selected, &createdRaw, &updatedRaw); err != nil {
		if err == sql.ErrNoRows {
			return persistence.Schedule{}, persistence.ErrNotFound
		}
		return persistence.Schedule{}, fmt.Errorf("sqlite: scan schedule: %w", err)
	}

	var err error
	if schedule.Slots, err = decodeSlots(slotsJSON); err != nil {
		return persistence.Schedule{}, err
	}
	if selected.Valid {
		if schedule.SelectedSlots, err = decodeSlots(selected.String); err != nil {
			return persistence.Schedule{}, err
		}
	}
	if schedule.CreatedAt, err = time.Parse(time.RFC3339, createdRaw); err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if schedule.UpdatedAt, err = time.Parse(time.RFC3339, updatedRaw); err != nil {
		return persistence.Schedule{}, fmt.Errorf("sqlite: parse updated_at: %w", err)
	}
	return schedule, nil
}

func encodeSlots(slots []persistence.Slot) (string, error) {
	if slots == nil {
		slots = []persistence.Slot{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("sqlite: encode slots: %w", err)
	}
	return string(raw), nil
}

func decodeSlots(raw string) ([]persistence.Slot, error) {
	var slots []persistence.Slot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, fmt.Errorf("sqlite: decode slots: %w", err)
	}
	return slots, nil
}
