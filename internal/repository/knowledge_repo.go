package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"babyguard-llm/internal/domain"
)

// KnowledgeRepository busca pasajes por similitud en el almacén embebido.
// El contenido es de solo lectura para el pipeline.
type KnowledgeRepository interface {
	Search(ctx context.Context, queryEmbedding pgvector.Vector, k int) ([]domain.KnowledgeDocument, error)
}

type PgKnowledgeRepository struct {
	pool *pgxpool.Pool
}

func NewPgKnowledgeRepository(pool *pgxpool.Pool) *PgKnowledgeRepository {
	return &PgKnowledgeRepository{pool: pool}
}

func (r *PgKnowledgeRepository) Search(ctx context.Context, queryEmbedding pgvector.Vector, k int) ([]domain.KnowledgeDocument, error) {
	if k <= 0 {
		k = 3
	}
	const query = `
		SELECT id, content, source, embedding
		FROM knowledge_documents
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.KnowledgeDocument
	for rows.Next() {
		var doc domain.KnowledgeDocument
		var source sql.NullString
		if err := rows.Scan(&doc.ID, &doc.Content, &source, &doc.Embedding); err != nil {
			return nil, err
		}
		if source.Valid {
			doc.Source = source.String
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
