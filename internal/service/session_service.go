package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"babyguard-llm/internal/domain"
	"babyguard-llm/internal/llm"
	"babyguard-llm/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTopicRequired   = errors.New("topic required")
	ErrTopicTooLong    = errors.New("topic too long")
)

// summaryUnavailable reemplaza al resumen cuando la llamada al modelo falla.
const summaryUnavailable = "Conversation summary unavailable"

// SessionService maneja el ciclo de vida de las sesiones de chat:
// creación, reactivación, cierre con resumen y tema, y borrado.
type SessionService struct {
	logger    *zap.Logger
	sessions  repository.SessionRepository
	messages  repository.MessageRepository
	llmClient llm.Client
}

func NewSessionService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	messages repository.MessageRepository,
	llmClient llm.Client,
) *SessionService {
	return &SessionService{
		logger:    logger,
		sessions:  sessions,
		messages:  messages,
		llmClient: llmClient,
	}
}

func (s *SessionService) Create(ctx context.Context, userID string) (domain.ChatSession, error) {
	session := domain.ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Topic:     domain.DefaultSessionTopic,
		StartTime: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.ChatSession{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	return s.sessions.ListByUser(ctx, userID)
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID string) (domain.ChatSession, error) {
	session, err := s.sessions.GetByID(ctx, userID, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ChatSession{}, ErrSessionNotFound
	}
	return session, err
}

func (s *SessionService) Delete(ctx context.Context, userID, sessionID string) error {
	if _, err := s.Get(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Reactivate limpia end_time si la sesión estaba finalizada; el timeline
// de mensajes sigue y un end-session posterior puede volver a cerrarla.
func (s *SessionService) Reactivate(ctx context.Context, session domain.ChatSession) error {
	if session.EndTime == nil {
		return nil
	}
	return s.sessions.ClearEndTime(ctx, session.ID)
}

const summaryPromptTemplate = "Please summarize the following conversation between a user and an AI assistant " +
	"about pregnancy, postpartum, or childcare. Focus on key topics discussed and " +
	"any important advice given. Keep it concise (2-3 sentences max).\n\nConversation:\n%s"

// End cierra la sesión: resume la conversación, asigna tema si todavía
// tiene el placeholder y fija end_time. El tema se trunca a 100 antes de
// persistir.
func (s *SessionService) End(ctx context.Context, userID, sessionID string) (summary, topic string, err error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return "", "", err
	}

	msgs, err := s.messages.ListAllBySession(ctx, sessionID)
	if err != nil {
		return "", "", fmt.Errorf("list messages: %w", err)
	}

	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Content))
	}
	conversation := strings.Join(lines, "\n")

	summary, genErr := s.llmClient.Generate(ctx, summarizerSystemPrompt, fmt.Sprintf(summaryPromptTemplate, conversation))
	if genErr != nil {
		if s.logger != nil {
			s.logger.Warn("summary call failed", zap.Error(genErr), zap.String("session_id", sessionID))
		}
		summary = summaryUnavailable
	} else {
		summary = strings.TrimSpace(summary)
	}

	topic = session.Topic
	if topic == domain.DefaultSessionTopic {
		if generated := NaiveTopic(conversation); !strings.EqualFold(generated, fallbackTopic) {
			topic = generated
		}
	}
	if len(topic) > domain.MaxTopicLength {
		topic = topic[:domain.MaxTopicLength]
	}

	if err := s.sessions.End(ctx, sessionID, summary, topic, time.Now().UTC()); err != nil {
		return "", "", fmt.Errorf("end session: %w", err)
	}
	return summary, topic, nil
}

func (s *SessionService) UpdateTopic(ctx context.Context, userID, sessionID, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ErrTopicRequired
	}
	if len(topic) > domain.MaxTopicLength {
		return ErrTopicTooLong
	}
	err := s.sessions.UpdateTopic(ctx, userID, sessionID, topic)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
