package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"babyguard-llm/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	chatH *ChatHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/auth")
	auth.POST("/register", userH.Register)
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.Refresh)

	api := r.Group("/api", JWTAuthMiddleware(jwtSvc))
	api.POST("/chat-sessions", chatH.CreateSession)
	api.GET("/chat-sessions", chatH.ListSessions)
	api.DELETE("/chat-sessions/:session_id", chatH.DeleteSession)
	api.GET("/chat-sessions/:session_id/messages", chatH.ListMessages)
	api.POST("/chat-sessions/:session_id/send", chatH.SendMessage)
	api.POST("/chat-sessions/:session_id/end", chatH.EndSession)
	api.POST("/chat-sessions/:session_id/update-topic", chatH.UpdateTopic)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
