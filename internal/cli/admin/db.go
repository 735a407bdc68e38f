package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docrecall/docrecall/internal/config"
	"github.com/docrecall/docrecall/internal/jobs"
	"github.com/docrecall/docrecall/internal/repository"
	"github.com/docrecall/docrecall/internal/storage"
	"github.com/spf13/cobra"
)

// DBCmd returns the db command group for snapshot inspection and backups.
func DBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and back up the document snapshot",
	}

	cmd.AddCommand(dbStatsCmd())
	cmd.AddCommand(dbBackupCmd())

	return cmd
}

func dbStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show document and chunk counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store, err := repository.OpenDocumentStore(cfg.SnapshotPath())
			if err != nil {
				return fmt.Errorf("failed to open document store: %w", err)
			}

			documents, chunks := store.Counts()
			fmt.Printf("Snapshot: %s\n", store.SnapshotPath())
			fmt.Printf("Documents: %d\n", documents)
			fmt.Printf("Chunks: %d\n", chunks)
			return nil
		},
	}
}

func dbBackupCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Take a one-off snapshot backup",
		Long:  "Uploads a timestamped snapshot copy to S3 when configured, otherwise writes it to a local file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store, err := repository.OpenDocumentStore(cfg.SnapshotPath())
			if err != nil {
				return fmt.Errorf("failed to open document store: %w", err)
			}

			if cfg.HasS3() {
				s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
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

				worker := jobs.NewSnapshotBackupWorker(store, s3Client)
				if err := worker.ProcessJobs(ctx); err != nil {
					return err
				}
				fmt.Println("Backup uploaded to S3.")
				return nil
			}

			data, err := store.SnapshotBytes()
			if err != nil {
				return fmt.Errorf("failed to serialize snapshot: %w", err)
			}

			if out == "" {
				worker := jobs.NewSnapshotBackupWorker(store, nil)
				out = filepath.Join(cfg.DataDir, filepath.Base(worker.BackupKey()))
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write backup file: %w", err)
			}
			fmt.Printf("Backup written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Local backup file path (used when S3 is not configured)")

	return cmd
}
