package service

import "strings"

// FormatPretty normaliza la salida cruda del modelo a markdown consistente:
// colapsa saltos dobles, convierte "- " en viñetas "• " y resalta líneas
// "clave: valor" (que no sean URLs) con la clave en negrita.
func FormatPretty(text string) string {
	text = strings.ReplaceAll(text, "\n\n", "\n")
	lines := strings.Split(text, "\n")
	formatted := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- "):
			formatted = append(formatted, "• "+trimmed[2:])
		case strings.Contains(line, ":") && !strings.HasPrefix(line, "http"):
			key, val, _ := strings.Cut(line, ":")
			formatted = append(formatted, "**"+strings.TrimSpace(key)+"**: "+strings.TrimSpace(val))
		default:
			formatted = append(formatted, line)
		}
	}
	return strings.Join(formatted, "\n")
}
