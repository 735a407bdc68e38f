package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docrecall/docrecall/internal/api/handlers"
	"github.com/docrecall/docrecall/internal/config"
	"github.com/docrecall/docrecall/internal/embedding"
	"github.com/docrecall/docrecall/internal/jobs"
	"github.com/docrecall/docrecall/internal/repository"
	"github.com/docrecall/docrecall/internal/server"
	"github.com/docrecall/docrecall/internal/service"
	"github.com/docrecall/docrecall/internal/storage"
	"github.com/docrecall/docrecall/internal/telemetry"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the document intelligence API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides config)")
	cmd.Flags().String("data-dir", "", "Data directory (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if portFlag, _ := cmd.Flags().GetString("port"); portFlag != "" {
		cfg.Port = portFlag
	}
	if dataDirFlag, _ := cmd.Flags().GetString("data-dir"); dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}

	if cfg.SentryDSN != "" {
		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: cfg.SentrySampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	store, err := repository.OpenDocumentStore(cfg.SnapshotPath())
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	docs, chunks := store.Counts()
	log.Printf("document store ready at %s (%d documents, %d chunks)", cfg.SnapshotPath(), docs, chunks)

	var objects storage.ObjectStore
	var s3Client *storage.S3Client
	if cfg.HasS3() {
		s3Client, err = storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		objects = s3Client
	} else {
		objects, err = storage.NewLocalStore(cfg.UploadsDir())
		if err != nil {
			return fmt.Errorf("failed to prepare local upload store: %w", err)
		}
		log.Printf("storing uploads under %s", cfg.UploadsDir())
	}

	embedder := embedding.NewHashEmbedder()
	ingestSvc := service.NewIngestService(store, objects, embedder)
	answerSvc := service.NewAnswerService(store, embedder)

	router := server.NewRouter(server.RouterConfig{
		DocumentsHandler: handlers.NewDocumentsHandler(store, ingestSvc),
		AgentHandler:     handlers.NewAgentHandler(answerSvc),
	})

	var backupWorker *jobs.Worker
	if s3Client != nil && cfg.BackupIntervalMinutes > 0 {
		processor := jobs.NewSnapshotBackupWorker(store, s3Client)
		backupWorker = jobs.NewWorker(processor, time.Duration(cfg.BackupIntervalMinutes)*time.Minute)
		go backupWorker.Start(ctx)
		log.Printf("snapshot backup worker started (every %d minutes)", cfg.BackupIntervalMinutes)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if backupWorker != nil {
		backupWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if err := store.Flush(); err != nil {
		log.Printf("final snapshot flush failed: %v", err)
	}

	log.Println("server exited")
	return nil
}
