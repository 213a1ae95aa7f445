package search

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	maxParagraphs  = 5
	maxContentLen  = 500
	fetchTimeout   = 5 * time.Second
	noReadableText = "No readable content found."
)

// PageFetcher obtiene el texto legible de una página de resultado.
type PageFetcher interface {
	FetchReadable(ctx context.Context, url string) (string, error)
}

// HTTPPageFetcher descarga la página y extrae los primeros párrafos.
type HTTPPageFetcher struct {
	client *http.Client
}

func NewHTTPPageFetcher() *HTTPPageFetcher {
	// Timeout acotado: una fuente lenta no puede colgar el request del chat.
	return &HTTPPageFetcher{client: &http.Client{Timeout: fetchTimeout}}
}

// FetchReadable devuelve hasta 5 párrafos y 500 caracteres de la página.
func (f *HTTPPageFetcher) FetchReadable(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", err
	}

	paragraphs := collectParagraphs(doc, maxParagraphs)
	text := strings.TrimSpace(strings.Join(paragraphs, " "))
	// El corte es por runas: un corte por bytes puede partir un carácter
	// multibyte y dejar UTF-8 inválido en el extracto.
	if runes := []rune(text); len(runes) > maxContentLen {
		text = string(runes[:maxContentLen])
	}
	if text == "" {
		return noReadableText, nil
	}
	return text, nil
}

func collectParagraphs(n *html.Node, limit int) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if len(out) >= limit {
			return
		}
		if node.Type == html.ElementNode && node.Data == "p" {
			if text := strings.TrimSpace(nodeText(node)); text != "" {
				out = append(out, text)
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
