package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"filmpulse/internal/config"
	"filmpulse/internal/repository/bucket"
	"filmpulse/internal/repository/catalog"
	"filmpulse/internal/service/emotion"
	"filmpulse/internal/service/pipeline"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingestion batch",
	Long: `Discover transcript artifacts, classify dialogue emotions, aggregate
per-minute series and write them to the analytical store. Individual item
failures are recorded and reported; they do not abort the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		film, _ := cmd.Flags().GetString("film")
		language, _ := cmd.Flags().GetString("language")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Hour)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		if cfg.TranscriptsDir == "" {
			return fmt.Errorf("transcripts_dir is not configured")
		}
		if cfg.ClassifierURL == "" {
			return fmt.Errorf("classifier_url is not configured")
		}

		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		log := newLogger()

		catalogRepo := catalog.NewRepository(dbPool)
		bucketRepo := bucket.NewRepository(dbPool)
		scorer := emotion.NewClient(cfg.ClassifierURL, log)
		aggregator := &emotion.Aggregator{
			SmoothingWindow: cfg.SmoothingWindow,
			BufferMinutes:   cfg.ValidationBufferMinutes,
			Log:             log,
		}
		loader := pipeline.NewLoader(catalogRepo, bucketRepo, log)
		orchestrator := pipeline.NewOrchestrator(catalogRepo, scorer, aggregator, loader, log)

		outcomes, err := orchestrator.Run(ctx, cfg.TranscriptsDir, pipeline.RunOptions{
			FilmFilter:     film,
			LanguageFilter: language,
			DryRun:         dryRun,
		})
		if err != nil {
			return fmt.Errorf("batch run failed: %w", err)
		}

		succeeded, failed := 0, 0
		for _, o := range outcomes {
			if o.Success {
				succeeded++
				fmt.Printf("✅ %s (%s, %s): %d records written\n", o.FilmSlug, o.Language, o.SourceVersion, o.RecordsWritten)
			} else {
				failed++
				fmt.Printf("❌ %s (%s, %s): %s\n", o.FilmSlug, o.Language, o.SourceVersion, o.ErrorMessage)
			}
		}

		fmt.Printf("\nBatch complete: %d succeeded, %d failed\n", succeeded, failed)

		if failed > 0 {
			return fmt.Errorf("%d of %d batch items failed", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringP("film", "f", "", "Process only this film slug")
	runCmd.Flags().StringP("language", "l", "", "Process only this language code")
	runCmd.Flags().BoolP("dry-run", "d", false, "Process without writing to the store")

	rootCmd.AddCommand(runCmd)
}
