package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"babyguard-llm/internal/llm"
)

func TestSystemPrompt(t *testing.T) {
	c := NewResponseComposer(nil, &llm.MockClient{})

	if got := c.SystemPrompt(""); got != systemPersona {
		t.Fatalf("SystemPrompt without prefix must be the bare persona")
	}
	prefix := "The user's name is Ana. "
	if got := c.SystemPrompt(prefix); got != prefix+systemPersona {
		t.Fatalf("SystemPrompt with prefix = %q", got)
	}
}

func TestSoften(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites through model", func(t *testing.T) {
		c := NewResponseComposer(nil, &llm.MockClient{Response: "  gentle rewrite  "})
		if got := c.Soften(ctx, "raw text"); got != "gentle rewrite" {
			t.Fatalf("Soften = %q", got)
		}
	})

	t.Run("model failure falls back to formatted raw", func(t *testing.T) {
		c := NewResponseComposer(nil, &llm.MockClient{Err: errors.New("llm down")})
		if got := c.Soften(ctx, "- drink water"); got != "• drink water" {
			t.Fatalf("Soften fallback = %q", got)
		}
	})
}

func TestCompose(t *testing.T) {
	ctx := context.Background()
	sources := []string{"https://example.com/a", "https://example.com/b"}

	t.Run("with sources adds note and disclaimer", func(t *testing.T) {
		c := NewResponseComposer(nil, &llm.MockClient{Response: "Drink plenty of fluids."})
		got := c.Compose(ctx, "how much water", "some info", sources, "")
		if !strings.HasPrefix(got, "Drink plenty of fluids.") {
			t.Fatalf("Compose lost the model answer: %q", got)
		}
		if !strings.Contains(got, externalSourcesNote) {
			t.Fatalf("Compose with sources must include the sources note")
		}
		if !strings.HasSuffix(got, Disclaimer) {
			t.Fatalf("Compose must end with the disclaimer")
		}
	})

	t.Run("without sources omits note", func(t *testing.T) {
		c := NewResponseComposer(nil, &llm.MockClient{Response: "Answer."})
		got := c.Compose(ctx, "question", "info", nil, "")
		if strings.Contains(got, externalSourcesNote) {
			t.Fatalf("Compose without sources must not include the sources note")
		}
		if got != "Answer."+Disclaimer {
			t.Fatalf("Compose = %q", got)
		}
	})

	t.Run("model failure returns gentle fallback", func(t *testing.T) {
		c := NewResponseComposer(nil, &llm.MockClient{Err: errors.New("llm down")})
		if got := c.Compose(ctx, "question", "info", sources, ""); got != gentleFallback+Disclaimer {
			t.Fatalf("Compose fallback = %q", got)
		}
	})

	t.Run("prefix reaches system prompt", func(t *testing.T) {
		var seenSystem string
		mock := &llm.MockClient{GenerateFunc: func(ctx context.Context, system, user string) (string, error) {
			seenSystem = system
			return "ok", nil
		}}
		c := NewResponseComposer(nil, mock)
		c.Compose(ctx, "q", "info", nil, "The user's name is Ana. ")
		if !strings.HasPrefix(seenSystem, "The user's name is Ana. ") {
			t.Fatalf("personalization prefix missing from system prompt: %q", seenSystem)
		}
	})
}

func TestRedirect(t *testing.T) {
	ctx := context.Background()

	t.Run("appends disclaimer", func(t *testing.T) {
		c := NewResponseComposer(nil, &llm.MockClient{Response: "Let's talk about pregnancy instead."})
		got := c.Redirect(ctx, "off topic question", "")
		if got != "Let's talk about pregnancy instead."+Disclaimer {
			t.Fatalf("Redirect = %q", got)
		}
	})

	t.Run("model failure returns gentle fallback", func(t *testing.T) {
		c := NewResponseComposer(nil, &llm.MockClient{Err: errors.New("llm down")})
		if got := c.Redirect(ctx, "question", ""); got != gentleFallback+Disclaimer {
			t.Fatalf("Redirect fallback = %q", got)
		}
	})
}
