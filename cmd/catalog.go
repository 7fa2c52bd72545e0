package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"filmpulse/internal/config"
	"filmpulse/internal/model"
	"filmpulse/internal/repository/catalog"
	"filmpulse/internal/repository/common"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the film catalog and documented runtimes",
}

// catalogMigrateCmd applies pending schema migrations
var catalogMigrateCmd = &cobra.Command{
	Use:   "migrate [MIGRATIONS_DIR]",
	Short: "Apply database schema migrations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "migrations"
		if len(args) > 0 {
			dir = args[0]
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return err
		}

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		if err := common.RunMigrations(cfg.DatabaseURL, fmt.Sprintf("file://%s", absDir)); err != nil {
			return err
		}

		fmt.Println("Migrations applied.")
		return nil
	},
}

// runtimeSeedFile is the YAML shape of a documented runtime seed file
type runtimeSeedFile struct {
	Runtimes []model.DocumentedRuntime `yaml:"runtimes"`
}

// catalogSeedCmd loads documented runtimes (and catalog titles) from a
// YAML file
var catalogSeedCmd = &cobra.Command{
	Use:   "seed [RUNTIMES_YAML]",
	Short: "Seed documented film runtimes from a YAML file",
	Long: `Load the externally curated runtime table into the store. Each entry
carries a film slug, canonical title, authoritative runtime in seconds and
the reference source (e.g. a physical-media edition). Existing entries are
replaced; catalog titles are created when missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}

		var seed runtimeSeedFile
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return fmt.Errorf("failed to parse seed file: %w", err)
		}
		if len(seed.Runtimes) == 0 {
			return fmt.Errorf("seed file contains no runtimes")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		repo := catalog.NewRepository(dbPool)

		for _, runtime := range seed.Runtimes {
			r := runtime
			if err := repo.UpsertRuntime(ctx, &r); err != nil {
				return fmt.Errorf("failed to seed runtime for %s: %w", r.FilmSlug, err)
			}

			// Make the title resolvable; an existing title is fine
			if _, err := repo.FindFilmIDByTitle(ctx, r.Title); err != nil {
				film := &model.Film{Title: r.Title}
				if err := repo.CreateFilm(ctx, film); err != nil {
					return fmt.Errorf("failed to create catalog entry for %s: %w", r.Title, err)
				}
			}
		}

		fmt.Printf("Seeded %d documented runtimes.\n", len(seed.Runtimes))
		return nil
	},
}

// catalogListCmd shows the catalog contents
var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List film catalog entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		repo := catalog.NewRepository(dbPool)
		films, err := repo.ListFilms(ctx)
		if err != nil {
			return err
		}

		if len(films) == 0 {
			fmt.Println("Catalog is empty.")
			return nil
		}
		for _, film := range films {
			fmt.Printf("%4d  %s\n", film.ID, film.Title)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogMigrateCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
