package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"babyguard-llm/internal/config"
	"babyguard-llm/internal/db"
	apihttp "babyguard-llm/internal/http"
	"babyguard-llm/internal/llm"
	"babyguard-llm/internal/repository"
	"babyguard-llm/internal/search"
	"babyguard-llm/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	calendarRepo := repository.NewPgCalendarRepository(pool)
	trackerRepo := repository.NewPgTrackerRepository(pool)
	knowledgeRepo := repository.NewPgKnowledgeRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbedModel, logger)

	var searcher search.Searcher
	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		searcher = search.NewHTTPSearcher(cfg.SearchBaseURL, cfg.SearchAPIKey, cfg.SearchEngineID)
	} else {
		logger.Warn("web search not configured, external lookups disabled")
	}

	composer := service.NewResponseComposer(logger, llmClient)
	knowledgeSvc := service.NewKnowledgeService(logger, llmClient, knowledgeRepo, composer)
	webSvc := service.NewWebFallbackService(logger, searcher, search.NewHTTPPageFetcher(), composer)
	assistantSvc := service.NewAssistantService(
		logger,
		userRepo,
		calendarRepo,
		trackerRepo,
		service.NewSanitizer(logger),
		service.NewIntentRouter(llmClient),
		service.DefaultSafetyPolicy(),
		knowledgeSvc,
		webSvc,
		composer,
		service.NewInMemoryStore(),
	)
	sessionSvc := service.NewSessionService(logger, sessionRepo, messageRepo, llmClient)

	var (
		chatLimiter service.ChatRateLimiter
		tokenStore  service.RefreshTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			chatLimiter = service.NewRedisChatRateLimiter(redisClient, time.Minute, 20)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, userRepo)
	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	chatHandler := apihttp.NewChatHandler(logger, sessionSvc, messageRepo, assistantSvc, chatLimiter)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
