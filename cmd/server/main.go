package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"quizlyst-backend/internal/ai"
	"quizlyst-backend/internal/config"
	"quizlyst-backend/internal/handlers"
	"quizlyst-backend/internal/middleware"
	"quizlyst-backend/internal/quiz"
	"quizlyst-backend/internal/router"
	"quizlyst-backend/internal/services"
	"quizlyst-backend/internal/session"
)

func main() {
	log.Println("🚀 Starting Quizlyst Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Build AI Fallback Chain ────
	backends := []ai.Completer{
		ai.NewOpenRouter(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.FrontendURL, "Quizlyst"),
	}
	if cfg.CohereAPIKey != "" {
		backends = append(backends, ai.NewCohere(cfg.CohereAPIKey, cfg.CohereModel))
	}
	var gemini *ai.Gemini
	if cfg.GeminiAPIKey != "" {
		var err error
		gemini, err = ai.NewGemini(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		backends = append(backends, gemini)
	}
	chain := ai.NewChain(time.Duration(cfg.AITimeoutSeconds)*time.Second, backends...)
	log.Printf("✓ AI chain ready: %s", strings.Join(chain.Backends(), " → "))

	// ──── Step 3: Initialize Services ────
	sessionAuth := middleware.NewSessionAuth(cfg.SessionSecret)
	store := session.NewStore()
	notesService := services.NewNotesService(chain)
	webService := services.NewWebExtractService()
	youtubeService := services.NewYouTubeService()
	fileService := services.NewFileExtractService()
	generator := quiz.NewGenerator(chain, time.Duration(cfg.QuizBatchDelayMS)*time.Millisecond)

	// ──── Step 4: Initialize Handlers ────
	contentHandler := handlers.NewContentHandler(
		store,
		notesService,
		webService,
		youtubeService,
		fileService,
		int64(cfg.MaxUploadMB)<<20,
	)
	quizHandler := handlers.NewQuizHandler(store, generator)

	// Generation endpoints hit paid AI APIs (30 req/min per IP)
	aiLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer aiLimiter.Stop()

	// ──── Step 5: Start HTTP Server ────
	r := router.New(sessionAuth, aiLimiter, contentHandler, quizHandler, handlers.Health(cfg.Env, chain.Backends()), cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Quiz generation holds the response open across batched AI calls.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Quizlyst Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("✗ Server failed: %v", err)
	}
}
