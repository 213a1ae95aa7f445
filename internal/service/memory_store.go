package service

import (
	"sync"

	"babyguard-llm/internal/domain"
)

// MemoryStore acumula los turnos de conversación por sesión. Vive en el
// proceso: se pierde en un reinicio y puede desincronizarse del log
// persistido de mensajes en despliegues multi-proceso. Se inyecta en el
// orquestador para poder aislarlo en tests o reemplazarlo más adelante.
type MemoryStore interface {
	Append(sessionID string, turn domain.ConversationTurn)
	History(sessionID string) []domain.ConversationTurn
}

type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]domain.ConversationTurn
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string][]domain.ConversationTurn),
	}
}

func (s *InMemoryStore) Append(sessionID string, turn domain.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
}

// History devuelve una copia de los turnos en orden de llegada.
func (s *InMemoryStore) History(sessionID string) []domain.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[sessionID]
	out := make([]domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out
}
