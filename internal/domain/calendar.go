package domain

import "time"

// CalendarEvent es una cita del calendario del usuario. El asistente solo
// la lee para responder consultas de agenda del día.
type CalendarEvent struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	EventDate   time.Time `json:"event_date"`
	EventTime   string    `json:"event_time"`
	Description string    `json:"description,omitempty"`
}
