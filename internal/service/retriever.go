package service

import (
	"context"
	"fmt"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"babyguard-llm/internal/llm"
	"babyguard-llm/internal/repository"
)

// RetrievalStatus etiqueta el resultado de una etapa de recuperación.
// El orquestador decide transiciones a partir del tag, no de errores.
type RetrievalStatus int

const (
	RetrievalFound RetrievalStatus = iota
	RetrievalEmpty
	RetrievalError
)

// RetrievalResult es la salida etiquetada del Knowledge Retriever.
// Answer solo está poblado con RetrievalFound y ya incluye el disclaimer.
type RetrievalResult struct {
	Status RetrievalStatus
	Answer string
}

const retrieverTopK = 3

// KnowledgeService resume pasajes relevantes del almacén embebido.
type KnowledgeService struct {
	logger    *zap.Logger
	llmClient llm.Client
	docs      repository.KnowledgeRepository
	composer  *ResponseComposer
}

func NewKnowledgeService(
	logger *zap.Logger,
	llmClient llm.Client,
	docs repository.KnowledgeRepository,
	composer *ResponseComposer,
) *KnowledgeService {
	return &KnowledgeService{
		logger:    logger,
		llmClient: llmClient,
		docs:      docs,
		composer:  composer,
	}
}

const summarizeDocsPrompt = "Summarize the following passages into a single coherent answer for the user question %q. " +
	"Keep only information relevant to the question.\n\n%s"

// RetrieveAndSummarize hace la búsqueda top-k y resume los pasajes con el
// modelo. Nunca deja escapar un error: toda falla colapsa en el tag.
func (s *KnowledgeService) RetrieveAndSummarize(ctx context.Context, query string) RetrievalResult {
	embed, err := s.llmClient.CreateEmbedding(ctx, query)
	if err != nil {
		s.warn("query embedding failed", err)
		return RetrievalResult{Status: RetrievalError}
	}

	docs, err := s.docs.Search(ctx, pgvector.NewVector(embed), retrieverTopK)
	if err != nil {
		s.warn("knowledge search failed", err)
		return RetrievalResult{Status: RetrievalError}
	}
	if len(docs) == 0 {
		return RetrievalResult{Status: RetrievalEmpty}
	}

	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}

	raw, err := s.llmClient.Generate(ctx, systemPersona, fmt.Sprintf(summarizeDocsPrompt, query, strings.Join(contents, "\n\n")))
	if err != nil {
		s.warn("summarize call failed", err)
		return RetrievalResult{Status: RetrievalError}
	}

	answer := s.composer.Soften(ctx, strings.TrimSpace(raw))
	return RetrievalResult{
		Status: RetrievalFound,
		Answer: answer + Disclaimer,
	}
}

func (s *KnowledgeService) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, zap.Error(err))
	}
}
