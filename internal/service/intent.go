package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"babyguard-llm/internal/llm"
)

// Intent es el resultado de clasificar el mensaje entrante.
type Intent int

const (
	GeneralQuery Intent = iota
	AppointmentQuery
)

// appointmentPatterns cubre las formas usuales de preguntar por la agenda
// del día. Gana el primer match.
var appointmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`today.*appointment`),
	regexp.MustCompile(`appointment.*today`),
	regexp.MustCompile(`today.*schedule`),
	regexp.MustCompile(`schedule.*today`),
	regexp.MustCompile(`what.*appointment.*today`),
	regexp.MustCompile(`do i have.*appointment.*today`),
	regexp.MustCompile(`any.*appointment.*today`),
	regexp.MustCompile(`what.*events.*today`),
	regexp.MustCompile(`today.*events`),
	regexp.MustCompile(`calendar.*today`),
	regexp.MustCompile(`today.*calendar`),
}

// IntentRouter decide el camino del mensaje: consulta de agenda versus
// pregunta general, y si una pregunta general amerita lookup externo.
type IntentRouter struct {
	llmClient llm.Client
}

func NewIntentRouter(llmClient llm.Client) *IntentRouter {
	return &IntentRouter{llmClient: llmClient}
}

func (r *IntentRouter) ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, p := range appointmentPatterns {
		if p.MatchString(lower) {
			return AppointmentQuery
		}
	}
	return GeneralQuery
}

const lookupDecisionPrompt = "You are an expert assistant. Decide if the following user question requires looking up external sources or if you can answer it from your own knowledge. " +
	"Answer with exactly one token: YES or NO. Do not add anything else.\n\n" +
	"User question: %s"

// NeedsExternalLookup hace una llamada generativa con contrato de salida
// restringido. Solo el token exacto YES habilita el lookup; cualquier
// respuesta ambigua o una falla del modelo cuentan como NO, porque el
// camino degradado (redirect temático) es el más seguro.
func (r *IntentRouter) NeedsExternalLookup(ctx context.Context, query string) bool {
	resp, err := r.llmClient.Generate(ctx, systemPersona, fmt.Sprintf(lookupDecisionPrompt, query))
	if err != nil {
		return false
	}
	decision, ok := parseYesNo(resp)
	return ok && decision
}

// parseYesNo acepta únicamente los tokens exactos YES/NO (sin importar
// mayúsculas y con puntuación final tolerada). Todo lo demás es ambiguo.
func parseYesNo(raw string) (value bool, ok bool) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	token = strings.TrimRight(token, ".!")
	switch token {
	case "YES":
		return true, true
	case "NO":
		return false, true
	default:
		return false, false
	}
}
