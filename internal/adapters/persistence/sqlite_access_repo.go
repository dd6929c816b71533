package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jeanlucaslima/meditha/internal/domain/access"
)

// SQLiteUserRepository implementa UserRepository, incluindo matrículas.
type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Save(ctx context.Context, u *access.User) error {
	query := `
		INSERT INTO users (id, email, nome, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Nome, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *SQLiteUserRepository) Update(ctx context.Context, u *access.User) error {
	query := `UPDATE users SET nome = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, u.Nome, u.UpdatedAt, u.ID)
	return err
}

func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (*access.User, error) {
	query := `SELECT id, email, nome, created_at, updated_at FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*access.User, error) {
	query := `SELECT id, email, nome, created_at, updated_at FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteUserRepository) scanOne(row *sql.Row) (*access.User, error) {
	var u access.User
	err := row.Scan(&u.ID, &u.Email, &u.Nome, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Não encontrado (sem erro)
		}
		return nil, err
	}
	return &u, nil
}

// ------ ENROLLMENT METHODS ------

func (r *SQLiteUserRepository) SaveEnrollment(ctx context.Context, e *access.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, user_id, program, session_id, payment_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, program) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Program, e.SessionID, e.PaymentID, e.CreatedAt,
	)
	return err
}

func (r *SQLiteUserRepository) HasEnrollment(ctx context.Context, userID, program string) (bool, error) {
	var one int
	query := `SELECT 1 FROM enrollments WHERE user_id = ? AND program = ?`
	err := r.db.QueryRowContext(ctx, query, userID, program).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SQLiteMagicTokenRepository implementa MagicTokenRepository. Só o
// hash do token chega aqui.
type SQLiteMagicTokenRepository struct {
	db *sql.DB
}

func NewSQLiteMagicTokenRepository(db *sql.DB) *SQLiteMagicTokenRepository {
	return &SQLiteMagicTokenRepository{db: db}
}

func (r *SQLiteMagicTokenRepository) Save(ctx context.Context, t *access.MagicToken) error {
	query := `
		INSERT INTO magic_tokens (token_hash, user_id, email, expires_at, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.TokenHash, t.UserID, t.Email, t.ExpiresAt, t.Used, t.CreatedAt,
	)
	return err
}

func (r *SQLiteMagicTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*access.MagicToken, error) {
	query := `
		SELECT token_hash, user_id, email, expires_at, used, created_at
		FROM magic_tokens WHERE token_hash = ?
	`
	row := r.db.QueryRowContext(ctx, query, tokenHash)

	var t access.MagicToken
	err := row.Scan(&t.TokenHash, &t.UserID, &t.Email, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Não encontrado (sem erro)
		}
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteMagicTokenRepository) MarkUsed(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE magic_tokens SET used = 1 WHERE token_hash = ?", tokenHash)
	return err
}

func (r *SQLiteMagicTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM magic_tokens WHERE expires_at < ?", before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
