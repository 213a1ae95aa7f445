package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"babyguard-llm/internal/llm"
)

// ResponseComposer arma las llamadas generativas finales y garantiza el
// formato markdown y el disclaimer en toda respuesta del camino general.
type ResponseComposer struct {
	logger    *zap.Logger
	llmClient llm.Client
}

func NewResponseComposer(logger *zap.Logger, llmClient llm.Client) *ResponseComposer {
	return &ResponseComposer{logger: logger, llmClient: llmClient}
}

// SystemPrompt antepone el prefijo de personalización a la persona fija.
func (c *ResponseComposer) SystemPrompt(personaPrefix string) string {
	if personaPrefix == "" {
		return systemPersona
	}
	return personaPrefix + systemPersona
}

// Soften reescribe texto crudo (pasajes recuperados, extractos de páginas)
// en el tono de la persona y lo normaliza a markdown. Ante falla del
// modelo devuelve el texto original formateado, nunca un error.
func (c *ResponseComposer) Soften(ctx context.Context, raw string) string {
	resp, err := c.llmClient.Generate(ctx, systemPersona, raw)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("soften call failed", zap.Error(err))
		}
		return FormatPretty(raw)
	}
	return FormatPretty(strings.TrimSpace(resp))
}

const composePromptTemplate = "You are a friendly nurse assistant. The user asked: '%s'. " +
	"Here is some information I found: %s " +
	"Here are the sources: %s " +
	"Please answer the user's question in a conversational, supportive, and concise way, as if you are chatting with them directly. " +
	"Always include a 'Sources:' section if a lookup was performed, and remind the user to consult their healthcare provider before acting on any information from external sources. " +
	"Format your response in clear, concise markdown (use lists, headings, and bold where appropriate). Limit your response to 5-7 lines."

// Compose genera la respuesta final a partir de la consulta, el contexto
// reunido y los links fuente. Toda salida termina con el disclaimer;
// cuando hubo fuentes externas agrega además la advertencia de fuentes.
func (c *ResponseComposer) Compose(ctx context.Context, query, info string, sources []string, personaPrefix string) string {
	sourcesText := "None"
	if len(sources) > 0 {
		lines := make([]string, len(sources))
		for i, link := range sources {
			lines[i] = "- " + link
		}
		sourcesText = strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(composePromptTemplate, query, info, sourcesText)
	resp, err := c.llmClient.Generate(ctx, c.SystemPrompt(personaPrefix), prompt)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("compose call failed", zap.Error(err))
		}
		return gentleFallback + Disclaimer
	}

	answer := FormatPretty(strings.TrimSpace(resp))
	if len(sources) > 0 {
		answer += externalSourcesNote
	}
	return answer + Disclaimer
}

const redirectPromptTemplate = "You are a friendly nurse assistant. The user asked: '%s'. " +
	"You do not have relevant information to answer this directly. However, if the user is asking about food, meals, or nutrition, suggest healthy meal ideas and nutrition tips for pregnant or postpartum women. " +
	"Otherwise, respond in a warm, concise, and supportive way, gently letting the user know you don't have information on that topic, and encourage them to ask about pregnancy, postpartum, or childcare. " +
	"Do not go off-topic. Format your response in clear, concise markdown (use lists, headings, and bold where appropriate). Limit your response to 5-7 lines."

// Redirect responde cuando no hay información: reconduce hacia temas de
// embarazo, postparto y crianza sin salirse del dominio.
func (c *ResponseComposer) Redirect(ctx context.Context, query, personaPrefix string) string {
	prompt := fmt.Sprintf(redirectPromptTemplate, query)
	resp, err := c.llmClient.Generate(ctx, c.SystemPrompt(personaPrefix), prompt)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("redirect call failed", zap.Error(err))
		}
		return gentleFallback + Disclaimer
	}
	return strings.TrimSpace(resp) + Disclaimer
}
