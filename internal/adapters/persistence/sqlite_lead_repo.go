package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jeanlucaslima/meditha/internal/domain/lead"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
)

type SQLiteLeadRepository struct {
	db *sql.DB
}

func NewSQLiteLeadRepository(db *sql.DB) *SQLiteLeadRepository {
	return &SQLiteLeadRepository{db: db}
}

// Save grava o lead. Reenvio da mesma sessão sobrescreve a captura
// anterior (upsert por session_id).
func (r *SQLiteLeadRepository) Save(ctx context.Context, l *lead.Lead) error {
	answers, err := json.Marshal(l.Answers)
	if err != nil {
		return err
	}
	flags, err := json.Marshal(l.Flags)
	if err != nil {
		return err
	}
	meta, err := json.Marshal(l.Meta)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO leads (session_id, nome, email, consent, answers, flags, meta, started_at, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			nome = excluded.nome,
			email = excluded.email,
			consent = excluded.consent,
			answers = excluded.answers,
			flags = excluded.flags,
			meta = excluded.meta,
			completed_at = excluded.completed_at
	`
	_, err = r.db.ExecContext(ctx, query,
		l.SessionID, l.Nome, l.Email, l.Consent,
		string(answers), string(flags), string(meta),
		l.StartedAt, l.CompletedAt, l.CreatedAt,
	)
	return err
}

func (r *SQLiteLeadRepository) FindBySessionID(ctx context.Context, sessionID string) (*lead.Lead, error) {
	query := `
		SELECT session_id, nome, email, consent, answers, flags, meta, started_at, completed_at, created_at
		FROM leads WHERE session_id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sessionID))
}

func (r *SQLiteLeadRepository) FindByEmail(ctx context.Context, email string) (*lead.Lead, error) {
	query := `
		SELECT session_id, nome, email, consent, answers, flags, meta, started_at, completed_at, created_at
		FROM leads WHERE email = ? ORDER BY created_at DESC LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteLeadRepository) scanOne(row *sql.Row) (*lead.Lead, error) {
	var l lead.Lead
	var answers, flags, meta string

	err := row.Scan(
		&l.SessionID, &l.Nome, &l.Email, &l.Consent,
		&answers, &flags, &meta,
		&l.StartedAt, &l.CompletedAt, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Não encontrado (sem erro)
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(answers), &l.Answers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(flags), &l.Flags); err != nil {
		l.Flags = quiz.Flags{}
	}
	if err := json.Unmarshal([]byte(meta), &l.Meta); err != nil {
		return nil, err
	}
	return &l, nil
}
