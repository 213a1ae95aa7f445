package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"babyguard-llm/internal/search"
)

// WebSearchStatus etiqueta el resultado del fallback web.
type WebSearchStatus int

const (
	WebFound WebSearchStatus = iota
	WebEmpty
	WebError
)

// WebSearchResult agrupa los extractos suavizados y los links fuente.
type WebSearchResult struct {
	Status  WebSearchStatus
	Info    string
	Sources []string
}

const webSearchResults = 2

// WebFallbackService busca en la web cuando el almacén local no tiene
// pasajes relevantes y el router decidió que hace falta lookup.
type WebFallbackService struct {
	logger   *zap.Logger
	searcher search.Searcher
	fetcher  search.PageFetcher
	composer *ResponseComposer
}

func NewWebFallbackService(
	logger *zap.Logger,
	searcher search.Searcher,
	fetcher search.PageFetcher,
	composer *ResponseComposer,
) *WebFallbackService {
	return &WebFallbackService{
		logger:   logger,
		searcher: searcher,
		fetcher:  fetcher,
		composer: composer,
	}
}

// Lookup trae los primeros resultados, extrae el texto legible de cada
// página y lo suaviza. Fallas de red o parseo colapsan en WebError; el
// orquestador las convierte en la respuesta fija de disculpa.
func (s *WebFallbackService) Lookup(ctx context.Context, query string) WebSearchResult {
	if s.searcher == nil {
		return WebSearchResult{Status: WebError}
	}

	results, err := s.searcher.Search(ctx, query, webSearchResults)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("web search failed", zap.Error(err))
		}
		return WebSearchResult{Status: WebError}
	}
	if len(results) == 0 {
		return WebSearchResult{Status: WebEmpty}
	}

	snippets := make([]string, 0, len(results))
	links := make([]string, 0, len(results))
	for _, res := range results {
		content, err := s.fetcher.FetchReadable(ctx, res.Link)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("page fetch failed", zap.String("link", res.Link), zap.Error(err))
			}
			return WebSearchResult{Status: WebError}
		}
		snippets = append(snippets, s.composer.Soften(ctx, content))
		links = append(links, res.Link)
	}

	return WebSearchResult{
		Status:  WebFound,
		Info:    strings.Join(snippets, "\n\n"),
		Sources: links,
	}
}
