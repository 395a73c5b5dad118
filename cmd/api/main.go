package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/struckmeier-elektro/baulog/internal/application"
	appjournal "github.com/struckmeier-elektro/baulog/internal/application/journal"
	"github.com/struckmeier-elektro/baulog/internal/config"
	domain "github.com/struckmeier-elektro/baulog/internal/domain/journal"
	"github.com/struckmeier-elektro/baulog/internal/domain/analysis"
	openaiClient "github.com/struckmeier-elektro/baulog/internal/infra/ai/openai"
	"github.com/struckmeier-elektro/baulog/internal/infra/db/jsonfile"
	"github.com/struckmeier-elektro/baulog/internal/infra/httpserver"
	"github.com/struckmeier-elektro/baulog/internal/infra/images"
	"github.com/struckmeier-elektro/baulog/internal/infra/storage"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := newLogger(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx := context.Background()

	store, err := jsonfile.New(cfg.Data.File)
	if err != nil {
		sugar.Fatalw("journal store init error", "file", cfg.Data.File, "error", err)
	}

	var imageStore domain.ImageStore
	uploadsDir := ""
	switch cfg.Storage.Driver {
	case "minio":
		imageStore, err = storage.NewMinioStore(ctx,
			cfg.Storage.Minio.Endpoint,
			cfg.Storage.Minio.Region,
			cfg.Storage.Minio.BucketName,
			cfg.Storage.Minio.AccessKey,
			cfg.Storage.Minio.SecretKey,
			cfg.Storage.Minio.UseSSL,
		)
		if err != nil {
			sugar.Fatalw("minio init error", "error", err)
		}
	default:
		local, err := storage.NewLocalStore(cfg.Data.UploadsDir)
		if err != nil {
			sugar.Fatalw("uploads dir init error", "error", err)
		}
		imageStore = local
		uploadsDir = local.Dir()
	}

	svc := &appjournal.Service{
		Repo:     store,
		Images:   imageStore,
		Preparer: images.NewPreparer(),
		Fallback: analysis.NewFallback(rand.NewSource(time.Now().UnixNano())),
		Clock:    application.SystemClock{},
		Timeout:  time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
		Log:      sugar,
	}
	if cfg.OpenAI.APIKey != "" {
		svc.AI = openaiClient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		sugar.Infow("vision model configured", "model", svc.AI.Model())
	} else {
		sugar.Warn("no OpenAI API key configured, all analyses will use the offline fallback")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(svc, uploadsDir, sugar),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // the vision call dominates upload latency
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	sugar.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		sugar.Errorw("shutdown error", "error", err)
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" || mode == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
