package service

import (
	"regexp"
	"sort"
	"strings"
)

// fallbackTopic se devuelve cuando ningún token sobrevive el filtrado.
const fallbackTopic = "New Chat"

var topicWordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)

// topicStopwords es la lista fija de palabras comunes excluidas del tema.
var topicStopwords = map[string]struct{}{
	"the": {}, "is": {}, "in": {}, "and": {}, "to": {}, "a": {}, "of": {},
	"that": {}, "it": {}, "on": {}, "for": {}, "you": {}, "with": {},
	"as": {}, "this": {}, "are": {}, "was": {}, "but": {}, "be": {},
	"at": {}, "or": {}, "not": {}, "have": {}, "from": {}, "an": {},
	"by": {}, "they": {}, "we": {}, "can": {}, "if": {}, "about": {},
	"your": {}, "more": {}, "what": {}, "my": {}, "do": {}, "me": {},
	"so": {}, "how": {}, "i": {}, "just": {}, "like": {}, "up": {},
	"out": {}, "now": {},
}

// NaiveTopic deriva un tema corto de una conversación: toma los 3 tokens
// alfabéticos más frecuentes (empates por orden de aparición), los une y
// los capitaliza. Determinístico para una misma entrada.
func NaiveTopic(conversation string) string {
	words := topicWordRe.FindAllString(strings.ToLower(conversation), -1)

	counts := make(map[string]int)
	order := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := topicStopwords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	if len(order) == 0 {
		return fallbackTopic
	}

	// Orden estable: frecuencia descendente, empates por primera aparición.
	top := make([]string, len(order))
	copy(top, order)
	sort.SliceStable(top, func(i, j int) bool {
		return counts[top[i]] > counts[top[j]]
	})
	if len(top) > 3 {
		top = top[:3]
	}

	return titleCase(strings.Join(top, " "))
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}
