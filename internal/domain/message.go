package domain

import "time"

// Roles de remitente válidos para un mensaje.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message es inmutable una vez creado y se ordena por CreatedAt.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationTurn es un turno en la memoria conversacional en proceso.
type ConversationTurn struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}
