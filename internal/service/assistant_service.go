package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"babyguard-llm/internal/domain"
	"babyguard-llm/internal/repository"
)

// profileReader es la vista mínima del colaborador de perfiles que el
// orquestador necesita.
type profileReader interface {
	GetProfileSnapshot(ctx context.Context, userID string) (domain.ProfileSnapshot, error)
}

// AssistantService es el orquestador del pipeline conversacional. Cada
// llamada a ProcessQuery es stateless salvo por el MemoryStore.
type AssistantService struct {
	logger    *zap.Logger
	profiles  profileReader
	calendar  repository.CalendarRepository
	trackers  repository.TrackerRepository
	sanitizer *Sanitizer
	intents   *IntentRouter
	safety    SafetyPolicy
	knowledge *KnowledgeService
	web       *WebFallbackService
	composer  *ResponseComposer
	memory    MemoryStore
	now       func() time.Time
}

func NewAssistantService(
	logger *zap.Logger,
	profiles profileReader,
	calendar repository.CalendarRepository,
	trackers repository.TrackerRepository,
	sanitizer *Sanitizer,
	intents *IntentRouter,
	safety SafetyPolicy,
	knowledge *KnowledgeService,
	web *WebFallbackService,
	composer *ResponseComposer,
	memory MemoryStore,
) *AssistantService {
	return &AssistantService{
		logger:    logger,
		profiles:  profiles,
		calendar:  calendar,
		trackers:  trackers,
		sanitizer: sanitizer,
		intents:   intents,
		safety:    safety,
		knowledge: knowledge,
		web:       web,
		composer:  composer,
		memory:    memory,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ProcessQuery procesa un mensaje entrante y devuelve la respuesta del
// asistente. Nunca propaga una falla al caller: el último recurso es el
// string "Error processing query: ...".
func (s *AssistantService) ProcessQuery(ctx context.Context, message, sessionID, userID string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.Error("process query panic", zap.Any("panic", r))
			}
			reply = fmt.Sprintf("Error processing query: %v", r)
		}
	}()

	clean := s.sanitizer.Clean(message)
	personaPrefix := s.personalizationPrefix(ctx, userID)

	if s.intents.ClassifyIntent(clean) == AppointmentQuery {
		reply = s.todaysAppointments(ctx, userID)
	} else {
		reply = s.answerGeneral(ctx, clean, personaPrefix)
		if tip := s.healthTip(ctx, userID); tip != "" {
			reply += tip
		}
	}

	s.memory.Append(sessionID, domain.ConversationTurn{Sender: domain.RoleUser, Content: clean})
	s.memory.Append(sessionID, domain.ConversationTurn{Sender: domain.RoleAssistant, Content: reply})
	return reply
}

// answerGeneral recorre el pipeline general: retrieval local, plantillas
// de seguridad sobre retrieval vacío, fallback web si el router lo pide,
// y composición final. Cada etapa devuelve un tag, no un error.
func (s *AssistantService) answerGeneral(ctx context.Context, query, personaPrefix string) string {
	res := s.knowledge.RetrieveAndSummarize(ctx, query)
	if res.Status == RetrievalFound {
		return res.Answer
	}

	// Las respuestas de seguridad nunca dependen de que el retrieval o la
	// búsqueda funcionen: van antes que el fallback web y que el redirect.
	if tmpl, ok := s.safety.Check(query); ok {
		return tmpl
	}

	if s.intents.NeedsExternalLookup(ctx, query) {
		web := s.web.Lookup(ctx, query)
		switch web.Status {
		case WebFound:
			return s.composer.Compose(ctx, query, web.Info, web.Sources, personaPrefix)
		case WebError:
			return troubleReply + Disclaimer
		}
		// WebEmpty cae al redirect temático.
	}

	return s.composer.Redirect(ctx, query, personaPrefix)
}

func (s *AssistantService) personalizationPrefix(ctx context.Context, userID string) string {
	snapshot, err := s.profiles.GetProfileSnapshot(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && s.logger != nil {
			s.logger.Warn("profile lookup failed", zap.Error(err), zap.String("user_id", userID))
		}
		return ""
	}

	var sb strings.Builder
	if snapshot.Name != "" {
		fmt.Fprintf(&sb, "The user's name is %s. ", snapshot.Name)
	}
	if snapshot.Birthday != nil {
		fmt.Fprintf(&sb, "The user's birthday is %s. ", snapshot.Birthday.Format("2006-01-02"))
	}
	return sb.String()
}

const appointmentsHeading = "### Today's Appointments\n"

func (s *AssistantService) todaysAppointments(ctx context.Context, userID string) string {
	events, err := s.calendar.ListByDate(ctx, userID, s.now())
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("calendar lookup failed", zap.Error(err), zap.String("user_id", userID))
		}
		return "Could not retrieve today's appointments right now."
	}
	if len(events) == 0 {
		return appointmentsHeading + "\nYou have no appointments scheduled for today.\n\n" + Disclaimer
	}

	lines := []string{appointmentsHeading}
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("- **%s** at %s\n  %s", ev.Title, ev.EventTime, ev.Description))
	}
	return strings.Join(lines, "\n") + "\n\n" + Disclaimer
}

// Umbrales fijos para el sufijo casual de salud.
const (
	waterThreshold = 5.0
	sleepThreshold = 6.0
	stepsThreshold = 2000
)

// healthTip agrega una línea por métrica del día por debajo del umbral.
// Sin fila de tracking (o con puros ceros) no hay sufijo.
func (s *AssistantService) healthTip(ctx context.Context, userID string) string {
	metrics, err := s.trackers.GetByDate(ctx, userID, s.now())
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && s.logger != nil {
			s.logger.Warn("tracker lookup failed", zap.Error(err), zap.String("user_id", userID))
		}
		return ""
	}

	var tips []string
	if metrics.WaterIntake < waterThreshold {
		tips = append(tips, "💧 Remember to drink some water today!")
	}
	if metrics.SleepHours < sleepThreshold {
		tips = append(tips, "😴 Try to get some rest if you can.")
	}
	if metrics.Steps < stepsThreshold {
		tips = append(tips, "🚶‍♀️ A short walk might help you feel better.")
	}
	if len(tips) == 0 {
		return ""
	}
	return "\n\n---\n" + strings.Join(tips, "\n")
}
