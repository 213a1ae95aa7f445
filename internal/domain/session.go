package domain

import "time"

// DefaultSessionTopic es el tema placeholder de una sesión recién creada.
const DefaultSessionTopic = "New chat"

// MaxTopicLength limita el tema antes de persistirlo.
const MaxTopicLength = 100

// ChatSession agrupa los mensajes de una conversación con el asistente.
// EndTime queda en nil mientras la sesión está activa y vuelve a nil
// si llega un mensaje nuevo después de finalizarla.
type ChatSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Topic     string     `json:"topic"`
	Summary   string     `json:"summary,omitempty"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}
