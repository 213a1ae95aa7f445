package domain

import (
	pgvector "github.com/pgvector/pgvector-go"
)

// KnowledgeDocument es un pasaje embebido del almacén de conocimiento.
// Se administra externamente; el asistente solo lo consulta.
type KnowledgeDocument struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	Source    string          `json:"source,omitempty"`
	Embedding pgvector.Vector `json:"-"`
}
