package service

import "strings"

// SafetyPolicy clasifica consultas de alto riesgo por keywords y devuelve
// plantillas fijas revisadas en lugar de texto generado. Es un valor
// inyectable para poder ajustar listas sin tocar la orquestación.
type SafetyPolicy struct {
	MedicationKeywords []string
	CrisisKeywords     []string
	MedicationReply    string
	CrisisReply        string
}

// DefaultSafetyPolicy devuelve las listas y plantillas revisadas.
func DefaultSafetyPolicy() SafetyPolicy {
	return SafetyPolicy{
		MedicationKeywords: []string{
			"medication", "medicine", "drug", "paracetamol", "acetaminophen",
			"ibuprofen", "antibiotic", "pill", "tablet", "painkiller",
			"safe to take", "is it safe", "can i take",
		},
		CrisisKeywords: []string{
			"depressed", "depression", "sad", "hopeless", "suicidal", "suicide",
			"kill myself", "ending my life", "worthless", "can't go on",
			"mental health", "anxious", "anxiety", "panic attack", "overwhelmed",
			"crying", "helpless", "lonely", "alone", "no one cares",
		},
		MedicationReply: medicationSafetyReply,
		CrisisReply:     crisisSupportReply,
	}
}

// Check evalúa la consulta contra ambas listas. La medicación se revisa
// antes que la crisis; con múltiples matches gana una sola plantilla.
func (p SafetyPolicy) Check(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, kw := range p.MedicationKeywords {
		if strings.Contains(q, kw) {
			return p.MedicationReply, true
		}
	}
	for _, kw := range p.CrisisKeywords {
		if strings.Contains(q, kw) {
			return p.CrisisReply, true
		}
	}
	return "", false
}

const medicationSafetyReply = "### Medication Safety\n\n" +
	"I'm here to support you with information and guidance. While I can't provide a definitive answer on the safety of specific medications like paracetamol during pregnancy or postpartum, I encourage you to consult your healthcare provider for personalized advice.\n\n" +
	"If you'd like, I can help you find general information from reputable sources, but always check with your provider before taking any medication.\n" +
	Disclaimer

const crisisSupportReply = "# I'm Here for You\n\n" +
	"I'm so sorry you're feeling this way. Your feelings are valid, and you are not alone.\n\n" +
	"If you're having thoughts of self-harm or suicide, please know that you matter and your life is important. It can help to talk about what you're feeling.\n\n" +
	"**Would you like to share more about what's on your mind? I'm here to listen and support you.**\n\n" +
	"Here are a few things you can try right now that might help, even a little:\n" +
	"- **Take a few deep breaths** and try to relax your shoulders.\n" +
	"- **Reach out to someone you trust**—a friend, family member, or your healthcare provider.\n" +
	"- **Go for a short walk** or step outside for some fresh air if you can.\n" +
	"- **Write down your feelings** or talk to someone about them.\n" +
	"- **Remember:** You are not alone, and things can get better.\n\n" +
	"If you are in crisis or need someone to talk to immediately, please consider reaching out to a helpline:\n\n" +
	"- **National Suicide Prevention Lifeline (US):** 1-800-273-8255\n" +
	"- **Samaritans (UK):** 116 123\n" +
	"- **Crisis Text Line:** Text HOME to 741741 (US/Canada/UK)\n" +
	"- **Befrienders Worldwide:** https://www.befrienders.org/ (for international support)\n\n" +
	"You are not a burden. If you'd like, I can stay with you and chat, suggest gentle self-care ideas, or help you find ways to talk to your provider about how you're feeling. Just let me know how I can support you.\n" +
	Disclaimer
