package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"babyguard-llm/internal/domain"
	"babyguard-llm/internal/repository"
	"babyguard-llm/internal/service"
)

// ChatHandler expone el ciclo de vida de sesiones de chat y el envío de
// mensajes al asistente.
type ChatHandler struct {
	logger     *zap.Logger
	sessionSvc *service.SessionService
	messages   repository.MessageRepository
	assistant  *service.AssistantService
	limiter    service.ChatRateLimiter
}

func NewChatHandler(
	logger *zap.Logger,
	sessionSvc *service.SessionService,
	messages repository.MessageRepository,
	assistantSvc *service.AssistantService,
	limiter service.ChatRateLimiter,
) *ChatHandler {
	return &ChatHandler{
		logger:     logger,
		sessionSvc: sessionSvc,
		messages:   messages,
		assistant:  assistantSvc,
		limiter:    limiter,
	}
}

// CreateSession maneja POST /api/chat-sessions.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create chat session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Chat session created", "session": session})
}

// ListSessions maneja GET /api/chat-sessions.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessions, err := h.sessionSvc.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve chat sessions"})
		return
	}
	if sessions == nil {
		sessions = []domain.ChatSession{}
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// DeleteSession maneja DELETE /api/chat-sessions/:session_id.
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	err := h.sessionSvc.Delete(c.Request.Context(), claims.UserID, c.Param("session_id"))
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or unauthorized"})
		return
	}
	if err != nil {
		h.logger.Error("delete session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete chat session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chat session deleted successfully"})
}

// ListMessages maneja GET /api/chat-sessions/:session_id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID := c.Param("session_id")
	if _, err := h.sessionSvc.Get(c.Request.Context(), claims.UserID, sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	total, err := h.messages.CountBySession(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("count messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve chat messages"})
		return
	}

	msgs, err := h.messages.ListBySession(c.Request.Context(), sessionID, perPage, (page-1)*perPage)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve chat messages"})
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
			"pages":    (total + perPage - 1) / perPage,
		},
	})
}

// SendMessage maneja POST /api/chat-sessions/:session_id/send: persiste el
// mensaje del usuario, reactiva la sesión si estaba finalizada, corre el
// pipeline del asistente y persiste la respuesta.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message content required"})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(claims.UserID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, slow down"})
		return
	}

	sessionID := c.Param("session_id")
	session, err := h.sessionSvc.Get(c.Request.Context(), claims.UserID, sessionID)
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	if err := h.sessionSvc.Reactivate(c.Request.Context(), session); err != nil {
		h.logger.Error("reactivate session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	userMsg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    domain.RoleUser,
		Content:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.messages.Create(c.Request.Context(), userMsg); err != nil {
		h.logger.Error("persist user message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	reply := h.assistant.ProcessQuery(c.Request.Context(), req.Message, sessionID, claims.UserID)

	assistantMsg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    domain.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.messages.Create(c.Request.Context(), assistantMsg); err != nil {
		h.logger.Error("persist assistant message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent", "response": reply})
}

// EndSession maneja POST /api/chat-sessions/:session_id/end.
func (h *ChatHandler) EndSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, topic, err := h.sessionSvc.End(c.Request.Context(), claims.UserID, c.Param("session_id"))
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		h.logger.Error("end session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end chat session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session ended", "summary": summary, "topic": topic})
}

// UpdateTopic maneja POST /api/chat-sessions/:session_id/update-topic.
func (h *ChatHandler) UpdateTopic(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic required"})
		return
	}

	err := h.sessionSvc.UpdateTopic(c.Request.Context(), claims.UserID, c.Param("session_id"), req.Topic)
	switch {
	case errors.Is(err, service.ErrTopicRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic required"})
		return
	case errors.Is(err, service.ErrTopicTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic too long (max 100)"})
		return
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	case err != nil:
		h.logger.Error("update topic failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update topic"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Topic updated", "topic": req.Topic})
}
