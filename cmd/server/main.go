package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jchen042/batch-translator/api/handlers"
	"github.com/jchen042/batch-translator/api/routes"
	"github.com/jchen042/batch-translator/config"
	"github.com/jchen042/batch-translator/internal/capability/google"
	"github.com/jchen042/batch-translator/internal/service/batch"
	"github.com/jchen042/batch-translator/pkg/logger"
	"github.com/jchen042/batch-translator/pkg/storage"
	"github.com/jchen042/batch-translator/pkg/storage/gcs"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(
		logger.WithLevel(cfg.Log.Level),
		logger.WithEncoding(cfg.Log.Encoding),
		logger.WithOutputPaths(cfg.Log.OutputPaths),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	googleCfg := google.Config{
		ProjectID:       cfg.Google.ProjectID,
		Location:        cfg.Google.Location,
		CredentialsFile: cfg.Google.CredentialsFile,
	}

	translator, err := google.NewTranslationClient(ctx, googleCfg, log)
	if err != nil {
		log.Fatal("Failed to create translation client", logger.Error(err))
	}
	defer translator.Close()

	detector, err := google.NewVisionClient(ctx, googleCfg, log)
	if err != nil {
		log.Fatal("Failed to create vision client", logger.Error(err))
	}
	defer detector.Close()

	var store storage.Storage
	if cfg.Translate.ConversionBucket != "" {
		gcsStore, err := gcs.NewGCSStorage(ctx, cfg.Translate.ConversionBucket, log)
		if err != nil {
			log.Fatal("Failed to create storage client", logger.Error(err))
		}
		defer gcsStore.Close()
		store = gcsStore
	}

	batchService := batch.NewService(translator, detector, store, log, &batch.ServiceConfig{
		MaxPagesPerRequest: cfg.Translate.MaxPagesPerRequest,
		MaxConcurrent:      cfg.Translate.MaxConcurrent,
	})

	h := handlers.NewHandlers(batchService, log)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Info("Server starting", logger.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Error(err))
	}
}
