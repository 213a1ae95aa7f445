package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"babyguard-llm/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.ChatSession) error
	GetByID(ctx context.Context, userID, sessionID string) (domain.ChatSession, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ChatSession, error)
	ClearEndTime(ctx context.Context, sessionID string) error
	End(ctx context.Context, sessionID, summary, topic string, endedAt time.Time) error
	UpdateTopic(ctx context.Context, userID, sessionID, topic string) error
	Delete(ctx context.Context, sessionID string) error
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.ChatSession) error {
	const query = `
		INSERT INTO chat_sessions (id, user_id, session_topic, summary, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Topic,
		session.Summary,
		session.StartTime,
		session.EndTime,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, userID, sessionID string) (domain.ChatSession, error) {
	const query = `
		SELECT id, user_id, session_topic, summary, start_time, end_time
		FROM chat_sessions
		WHERE user_id = $1 AND id = $2
	`
	return scanSession(r.pool.QueryRow(ctx, query, userID, sessionID))
}

func (r *PgSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	const query = `
		SELECT id, user_id, session_topic, summary, start_time, end_time
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY start_time DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// ClearEndTime reactiva una sesión finalizada cuando llega un mensaje nuevo.
func (r *PgSessionRepository) ClearEndTime(ctx context.Context, sessionID string) error {
	const query = `UPDATE chat_sessions SET end_time = NULL WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, sessionID)
	return err
}

func (r *PgSessionRepository) End(ctx context.Context, sessionID, summary, topic string, endedAt time.Time) error {
	const query = `
		UPDATE chat_sessions
		SET end_time = $1, summary = $2, session_topic = $3
		WHERE id = $4
	`
	_, err := r.pool.Exec(ctx, query, endedAt, summary, topic, sessionID)
	return err
}

func (r *PgSessionRepository) UpdateTopic(ctx context.Context, userID, sessionID, topic string) error {
	const query = `
		UPDATE chat_sessions SET session_topic = $1
		WHERE user_id = $2 AND id = $3
	`
	tag, err := r.pool.Exec(ctx, query, topic, userID, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete borra la sesión y sus mensajes (cascada en schema).
func (r *PgSessionRepository) Delete(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM chat_sessions WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, sessionID)
	return err
}

func scanSession(row pgx.Row) (domain.ChatSession, error) {
	var session domain.ChatSession
	var summary sql.NullString
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Topic,
		&summary,
		&session.StartTime,
		&session.EndTime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ChatSession{}, ErrNotFound
	}
	if err != nil {
		return domain.ChatSession{}, err
	}
	if summary.Valid {
		session.Summary = summary.String
	}
	return session, nil
}
