package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	pgvector "github.com/pgvector/pgvector-go"

	"babyguard-llm/internal/domain"
	"babyguard-llm/internal/llm"
)

type mockKnowledgeRepo struct {
	docs    []domain.KnowledgeDocument
	err     error
	queries int
}

func (m *mockKnowledgeRepo) Search(ctx context.Context, queryEmbedding pgvector.Vector, k int) ([]domain.KnowledgeDocument, error) {
	m.queries++
	if m.err != nil {
		return nil, m.err
	}
	if k < len(m.docs) {
		return m.docs[:k], nil
	}
	return m.docs, nil
}

func TestRetrieveAndSummarizeFound(t *testing.T) {
	repo := &mockKnowledgeRepo{docs: []domain.KnowledgeDocument{
		{ID: "1", Content: "Newborns feed every 2-3 hours."},
		{ID: "2", Content: "Cluster feeding is normal in the evening."},
	}}
	mock := &llm.MockClient{Response: "Feed your newborn every 2-3 hours."}
	svc := NewKnowledgeService(nil, mock, repo, NewResponseComposer(nil, mock))

	res := svc.RetrieveAndSummarize(context.Background(), "how often should my baby feed")
	if res.Status != RetrievalFound {
		t.Fatalf("expected RetrievalFound, got %v", res.Status)
	}
	if !strings.Contains(res.Answer, "Feed your newborn every 2-3 hours.") {
		t.Fatalf("answer lost the summary: %q", res.Answer)
	}
	if !strings.HasSuffix(res.Answer, Disclaimer) {
		t.Fatalf("answer must end with the disclaimer")
	}
}

func TestRetrieveAndSummarizeEmptyStore(t *testing.T) {
	repo := &mockKnowledgeRepo{}
	mock := &llm.MockClient{Response: "unused"}
	svc := NewKnowledgeService(nil, mock, repo, NewResponseComposer(nil, mock))

	for i := 0; i < 2; i++ {
		res := svc.RetrieveAndSummarize(context.Background(), "anything")
		if res.Status != RetrievalEmpty {
			t.Fatalf("call %d: expected RetrievalEmpty, got %v", i, res.Status)
		}
		if res.Answer != "" {
			t.Fatalf("call %d: empty result must carry no answer", i)
		}
	}
	if repo.queries != 2 {
		t.Fatalf("expected 2 searches, got %d", repo.queries)
	}
}

func TestRetrieveAndSummarizeErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		mock *llm.MockClient
		repo *mockKnowledgeRepo
	}{
		{
			name: "embedding failure",
			mock: &llm.MockClient{EmbedErr: boom},
			repo: &mockKnowledgeRepo{},
		},
		{
			name: "search failure",
			mock: &llm.MockClient{Response: "unused"},
			repo: &mockKnowledgeRepo{err: boom},
		},
		{
			name: "summarize failure",
			mock: &llm.MockClient{Err: boom},
			repo: &mockKnowledgeRepo{docs: []domain.KnowledgeDocument{{ID: "1", Content: "doc"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewKnowledgeService(nil, tt.mock, tt.repo, NewResponseComposer(nil, tt.mock))
			res := svc.RetrieveAndSummarize(context.Background(), "query")
			if res.Status != RetrievalError {
				t.Fatalf("expected RetrievalError, got %v", res.Status)
			}
		})
	}
}
