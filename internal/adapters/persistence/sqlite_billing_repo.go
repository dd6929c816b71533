package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jeanlucaslima/meditha/internal/domain/billing"
)

// SQLiteBillingRepository implementa PaymentRepository e
// WebhookEventRepository sobre o mesmo banco.
type SQLiteBillingRepository struct {
	db *sql.DB
}

func NewSQLiteBillingRepository(db *sql.DB) *SQLiteBillingRepository {
	return &SQLiteBillingRepository{db: db}
}

// ------ PAYMENT METHODS ------

func (r *SQLiteBillingRepository) Save(ctx context.Context, p *billing.Payment) error {
	query := `
		INSERT INTO payments (id, stripe_session_id, funnel_session_id, status, amount_cents, currency, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.StripeSessionID, p.FunnelSessionID, p.Status,
		p.AmountCents, p.Currency, p.Email, p.CreatedAt,
	)
	return err
}

func (r *SQLiteBillingRepository) FindByID(ctx context.Context, id string) (*billing.Payment, error) {
	query := `
		SELECT id, stripe_session_id, funnel_session_id, status, amount_cents, currency, email, created_at
		FROM payments WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var p billing.Payment
	err := row.Scan(
		&p.ID, &p.StripeSessionID, &p.FunnelSessionID, &p.Status,
		&p.AmountCents, &p.Currency, &p.Email, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Não encontrado (sem erro)
		}
		return nil, err
	}
	return &p, nil
}

// SQLiteWebhookEventRepository guarda todo evento recebido; a chave
// primária no event_id é quem dá a idempotência.
type SQLiteWebhookEventRepository struct {
	db *sql.DB
}

func NewSQLiteWebhookEventRepository(db *sql.DB) *SQLiteWebhookEventRepository {
	return &SQLiteWebhookEventRepository{db: db}
}

func (r *SQLiteWebhookEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM webhook_events WHERE id = ?", eventID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SQLiteWebhookEventRepository) Save(ctx context.Context, e *billing.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (id, type, payload, processed, process_note, received_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Type, e.Payload, e.Processed, e.ProcessNote, e.ReceivedAt,
	)
	return err
}

func (r *SQLiteWebhookEventRepository) MarkProcessed(ctx context.Context, eventID, note string) error {
	query := `UPDATE webhook_events SET processed = 1, process_note = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, note, eventID)
	return err
}
