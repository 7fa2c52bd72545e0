package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "filmpulse",
	Short: "Film subtitle emotion pipeline",
	Long: `filmpulse ingests multilingual subtitle transcripts for a film catalog,
validates their timing against documented runtimes, and aggregates per-line
emotion scores into smoothed per-minute series in PostgreSQL.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the shared pipeline logger
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if os.Getenv("FILMPULSE_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
