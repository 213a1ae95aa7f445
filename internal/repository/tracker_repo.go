package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"babyguard-llm/internal/domain"
)

// TrackerRepository lee las métricas de salud trackeadas del día.
type TrackerRepository interface {
	GetByDate(ctx context.Context, userID string, date time.Time) (domain.HealthMetrics, error)
}

type PgTrackerRepository struct {
	pool *pgxpool.Pool
}

func NewPgTrackerRepository(pool *pgxpool.Pool) *PgTrackerRepository {
	return &PgTrackerRepository{pool: pool}
}

// GetByDate devuelve ErrNotFound tanto si no hay fila como si la fila
// registra puros ceros: para el asistente son lo mismo.
func (r *PgTrackerRepository) GetByDate(ctx context.Context, userID string, date time.Time) (domain.HealthMetrics, error) {
	const query = `
		SELECT sleep_hours, water_intake, steps
		FROM health_tracking
		WHERE user_id = $1 AND track_date = $2
	`
	var metrics domain.HealthMetrics
	err := r.pool.QueryRow(ctx, query, userID, date.Format("2006-01-02")).Scan(
		&metrics.SleepHours,
		&metrics.WaterIntake,
		&metrics.Steps,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.HealthMetrics{}, ErrNotFound
	}
	if err != nil {
		return domain.HealthMetrics{}, err
	}
	if metrics.IsZero() {
		return domain.HealthMetrics{}, ErrNotFound
	}
	return metrics, nil
}
