package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response  string
	Err       error
	Embedding []float32
	EmbedErr  error

	// GenerateFunc permite variar la respuesta por prompt en tests.
	GenerateFunc func(ctx context.Context, system, user string) (string, error)
}

func (m *MockClient) Generate(ctx context.Context, system, user string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, user)
	}
	return m.Response, m.Err
}

func (m *MockClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.EmbedErr != nil {
		return nil, m.EmbedErr
	}
	if m.Embedding != nil {
		return m.Embedding, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}
