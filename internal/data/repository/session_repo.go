package repository

import (
	"context"
	"errors"
	"fmt"

	"amana-travel/internal/data/entity"
	"amana-travel/pkg/database"
	"amana-travel/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionRepository is the persisted copy of browser sessions. Remote
// tokens are sealed before they reach the table.
type SessionRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	ListAll(ctx context.Context) ([]*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db     database.PgxIface
	sealer *utils.Sealer
	log    *zap.Logger
}

func NewSessionRepository(db database.PgxIface, sealer *utils.Sealer, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:     db,
		sealer: sealer,
		log:    log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id           UUID PRIMARY KEY,
			user_id      TEXT NOT NULL,
			user_name    TEXT NOT NULL DEFAULT '',
			user_email   TEXT NOT NULL DEFAULT '',
			token_sealed TEXT NOT NULL,
			expires_at   TIMESTAMPTZ NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		r.log.Error("Failed to ensure sessions table", zap.Error(err))
		return fmt.Errorf("ensure sessions table: %w", err)
	}

	return nil
}

func (r *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	sealed, err := r.sealer.Seal(session.Token)
	if err != nil {
		return fmt.Errorf("seal session token: %w", err)
	}

	query := `
		INSERT INTO sessions (id, user_id, user_name, user_email, token_sealed,
		                      expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    user_name = EXCLUDED.user_name,
		    user_email = EXCLUDED.user_email,
		    token_sealed = EXCLUDED.token_sealed,
		    expires_at = EXCLUDED.expires_at
	`

	_, err = r.db.Exec(ctx, query,
		session.ID,
		session.User.ID,
		session.User.Name,
		session.User.Email,
		sealed,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to save session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
			zap.String("user_id", session.User.ID),
		)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT id, user_id, user_name, user_email, token_sealed,
		       expires_at, created_at
		FROM sessions
		WHERE id = $1
	`

	session, err := r.scan(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return session, nil
}

// ListAll returns every persisted session. Rows whose token no longer
// unseals are skipped and logged.
func (r *sessionRepository) ListAll(ctx context.Context) ([]*entity.Session, error) {
	query := `
		SELECT id, user_id, user_name, user_email, token_sealed,
		       expires_at, created_at
		FROM sessions
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list sessions", zap.Error(err))
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.Session
	for rows.Next() {
		session, err := r.scan(rows)
		if errors.Is(err, utils.ErrUnsealFailed) {
			r.log.Warn("Skipping session with unreadable token", zap.Error(err))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *sessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired sessions", zap.Error(err))
		return 0, fmt.Errorf("failed to clean sessions: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *sessionRepository) scan(row pgx.Row) (*entity.Session, error) {
	var (
		session entity.Session
		sealed  string
	)

	err := row.Scan(
		&session.ID,
		&session.User.ID,
		&session.User.Name,
		&session.User.Email,
		&sealed,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	token, err := r.sealer.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", session.ID, err)
	}
	session.Token = token

	return &session, nil
}
