package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"filmpulse/internal/config"
	"filmpulse/internal/repository/catalog"
	"filmpulse/internal/service/pipeline"
	"filmpulse/internal/service/validation"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate transcript timing",
	Long: `Check every discovered transcript's timing against documented film
runtimes and check duration agreement across language versions. No emotion
classification and no store writes happen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		film, _ := cmd.Flags().GetString("film")
		language, _ := cmd.Flags().GetString("language")
		format, _ := cmd.Flags().GetString("format")

		formatter, err := validation.GetFormatter(format)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		if cfg.TranscriptsDir == "" {
			return fmt.Errorf("transcripts_dir is not configured")
		}

		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		log := newLogger()
		catalogRepo := catalog.NewRepository(dbPool)
		orchestrator := pipeline.NewOrchestrator(catalogRepo, nil, nil, nil, log)

		summary, err := orchestrator.Validate(ctx, cfg.TranscriptsDir, pipeline.RunOptions{
			FilmFilter:     film,
			LanguageFilter: language,
		})
		if err != nil {
			return fmt.Errorf("validation run failed: %w", err)
		}

		output, err := formatter.Format(summary)
		if err != nil {
			return err
		}
		fmt.Print(output)

		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("film", "f", "", "Validate only this film slug")
	validateCmd.Flags().StringP("language", "l", "", "Validate only this language code")
	validateCmd.Flags().StringP("format", "o", "text", "Output format (text, json)")

	rootCmd.AddCommand(validateCmd)
}
