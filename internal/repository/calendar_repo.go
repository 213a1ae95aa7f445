package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"babyguard-llm/internal/domain"
)

// CalendarRepository expone solo la lectura que el asistente necesita:
// las citas del día ordenadas por hora.
type CalendarRepository interface {
	ListByDate(ctx context.Context, userID string, date time.Time) ([]domain.CalendarEvent, error)
}

type PgCalendarRepository struct {
	pool *pgxpool.Pool
}

func NewPgCalendarRepository(pool *pgxpool.Pool) *PgCalendarRepository {
	return &PgCalendarRepository{pool: pool}
}

func (r *PgCalendarRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]domain.CalendarEvent, error) {
	const query = `
		SELECT id, user_id, title, event_date, event_time, description
		FROM calendar_events
		WHERE user_id = $1 AND event_date = $2
		ORDER BY event_time ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.CalendarEvent
	for rows.Next() {
		var ev domain.CalendarEvent
		var description sql.NullString
		if err := rows.Scan(
			&ev.ID,
			&ev.UserID,
			&ev.Title,
			&ev.EventDate,
			&ev.EventTime,
			&description,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			ev.Description = description.String
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
