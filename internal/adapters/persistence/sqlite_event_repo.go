package persistence

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jeanlucaslima/meditha/internal/domain/funnel"
)

type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Save(ctx context.Context, e *funnel.Event) error {
	props := "{}"
	if e.Props != nil {
		raw, err := json.Marshal(e.Props)
		if err != nil {
			return err
		}
		props = string(raw)
	}

	query := `
		INSERT INTO events (id, session_id, name, step, props, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.SessionID, e.Name, e.Step, props, e.CreatedAt,
	)
	return err
}

func (r *SQLiteEventRepository) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]*funnel.Event, error) {
	query := `
		SELECT id, session_id, name, step, props, created_at
		FROM events WHERE session_id = ?
		ORDER BY created_at ASC LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*funnel.Event
	for rows.Next() {
		var e funnel.Event
		var props string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Name, &e.Step, &props, &e.CreatedAt); err != nil {
			return nil, err
		}
		if props != "" && props != "{}" {
			if err := json.Unmarshal([]byte(props), &e.Props); err != nil {
				return nil, err
			}
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) CountBySessionAndName(ctx context.Context, sessionID, name string) (int, error) {
	var count int
	query := `SELECT COUNT(1) FROM events WHERE session_id = ? AND name = ?`
	err := r.db.QueryRowContext(ctx, query, sessionID, name).Scan(&count)
	return count, err
}
