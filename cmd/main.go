package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wellness-backend/internal/config"
	"wellness-backend/internal/handler"
	"wellness-backend/internal/llm"
	"wellness-backend/internal/service"
	"wellness-backend/internal/storage"
	"wellness-backend/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	store, err := newStatusStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize status store: %v", err)
	}

	generator := llm.NewClient(cfg.LLM)
	searcher := service.NewWebSearcher(cfg.Search)
	emitter := service.NewEmitter(cfg.Stream)

	chatService := service.NewChatService(generator, searcher, emitter)
	statusService := service.NewStatusService(store)

	chatHandler := handler.NewChatHandler(chatService)
	statusHandler := handler.NewStatusHandler(statusService)

	router := setupRouter(cfg, chatHandler, statusHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("Server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Errorf("Store close failed: %v", err)
	}

	logger.Info("Server stopped")
}

// newStatusStore picks the backend at startup: MongoDB when a URL is
// configured, otherwise a process-local in-memory log.
func newStatusStore(cfg *config.Config) (storage.StatusStore, error) {
	if cfg.Store.MongoURL == "" {
		logger.Info("No Mongo URL configured, using in-memory status store")
		return storage.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewMongoStore(ctx, cfg.Store.MongoURL, cfg.Store.Database)
	if err != nil {
		return nil, err
	}

	logger.Infof("Connected to MongoDB database %q", cfg.Store.Database)
	return store, nil
}

func setupRouter(cfg *config.Config, chatHandler *handler.ChatHandler, statusHandler *handler.StatusHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	api := router.Group("/api")
	{
		api.GET("/", handler.Root)
		api.GET("/wellness-topics", handler.GetWellnessTopics)
		api.POST("/status", statusHandler.CreateStatusCheck)
		api.GET("/status", statusHandler.GetStatusChecks)
		api.POST("/chat/stream", chatHandler.StreamChat)
	}

	return router
}
