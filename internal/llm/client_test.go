package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientGenerate(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", "test-model", "embed-model", nil)
	resp, err := client.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if resp != "hello there" {
		t.Fatalf("Generate = %q", resp)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 2 {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected message roles: %+v", gotReq.Messages)
	}
}

func TestHTTPClientGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusTooManyRequests, body: `rate limited`},
		{name: "api error payload", status: http.StatusOK, body: `{"error":{"message":"invalid model"}}`},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, "k", "m", "e", nil)
			if _, err := client.Generate(context.Background(), "s", "u"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestHTTPClientCreateEmbedding(t *testing.T) {
	var gotPath string
	var gotReq embeddingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"data":[{"embedding":[0.5,-0.25,1]}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "k", "chat-model", "embed-model", nil)
	embed, err := client.CreateEmbedding(context.Background(), "some text")
	if err != nil {
		t.Fatalf("CreateEmbedding: %v", err)
	}

	if gotPath != "/embeddings" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotReq.Model != "embed-model" || gotReq.Input != "some text" {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
	if len(embed) != 3 || embed[0] != 0.5 {
		t.Fatalf("unexpected embedding: %v", embed)
	}
}

func TestHTTPClientCreateEmbeddingEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "k", "m", "e", nil)
	if _, err := client.CreateEmbedding(context.Background(), "text"); err == nil {
		t.Fatalf("expected error on empty embedding data")
	}
}
