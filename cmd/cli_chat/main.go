package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"babyguard-llm/internal/config"
	"babyguard-llm/internal/db"
	"babyguard-llm/internal/domain"
	"babyguard-llm/internal/llm"
	"babyguard-llm/internal/repository"
	"babyguard-llm/internal/search"
	"babyguard-llm/internal/service"
)

// REPL de consola contra el pipeline del asistente, sin pasar por HTTP.
// Útil para probar prompts, safety templates y retrieval con datos reales.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
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
	}

	composer := service.NewResponseComposer(logger, llmClient)
	knowledgeSvc := service.NewKnowledgeService(logger, llmClient, knowledgeRepo, composer)
	webSvc := service.NewWebFallbackService(logger, searcher, search.NewHTTPPageFetcher(), composer)
	memory := service.NewInMemoryStore()
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
		memory,
	)
	sessionSvc := service.NewSessionService(logger, sessionRepo, messageRepo, llmClient)

	user, err := ensureUser(ctx, userRepo, "cli_test@example.com")
	if err != nil {
		log.Fatal(err)
	}

	session, err := sessionSvc.Create(ctx, user.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Session %s started. Type a message, /history, or /end.\n", session.ID)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "/end":
			summary, topic, err := sessionSvc.End(ctx, user.ID, session.ID)
			if err != nil {
				log.Fatalf("end session: %v", err)
			}
			fmt.Printf("Topic: %s\nSummary: %s\n", topic, summary)
			return
		case "/history":
			for _, turn := range memory.History(session.ID) {
				fmt.Printf("[%s] %s\n", turn.Sender, turn.Content)
			}
			continue
		}

		reply := assistantSvc.ProcessQuery(ctx, line, session.ID, user.ID)
		fmt.Println(reply)
	}
}

func ensureUser(ctx context.Context, users *repository.PgUserRepository, email string) (domain.User, error) {
	user, err := users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, err
	}

	user = domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      "CLI Tester",
		CreatedAt: time.Now().UTC(),
	}
	if err := users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
