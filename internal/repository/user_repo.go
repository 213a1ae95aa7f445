package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"babyguard-llm/internal/domain"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetProfileSnapshot(ctx context.Context, userID string) (domain.ProfileSnapshot, error)
}

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, user_name, user_birthday, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Birthday,
		user.PasswordHash,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, email, user_name, user_birthday, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, email, user_name, user_birthday, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetProfileSnapshot devuelve solo los campos que el asistente usa para
// personalizar respuestas.
func (r *PgUserRepository) GetProfileSnapshot(ctx context.Context, userID string) (domain.ProfileSnapshot, error) {
	const query = `
		SELECT user_name, user_birthday
		FROM users
		WHERE id = $1
	`
	var snapshot domain.ProfileSnapshot
	var name sql.NullString
	err := r.pool.QueryRow(ctx, query, userID).Scan(&name, &snapshot.Birthday)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProfileSnapshot{}, ErrNotFound
	}
	if err != nil {
		return domain.ProfileSnapshot{}, err
	}
	if name.Valid {
		snapshot.Name = name.String
	}
	return snapshot, nil
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	var name sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&name,
		&user.Birthday,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	if name.Valid {
		user.Name = name.String
	}
	return user, nil
}
