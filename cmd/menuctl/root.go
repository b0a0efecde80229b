package main

import (
	"context"
	"fmt"
	"os"

	"cardapio/internal/db"
	"cardapio/internal/logging"
	"cardapio/internal/menu"
	"cardapio/internal/restaurant"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "menuctl",
	Short: "Manages restaurant menus in the cardapio database",
	Long: `menuctl loads menus into cardapio: import a JSON menu exported from
another system, or seed a restaurant with a fake demo menu.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("database-url", "", "postgres connection string (env DATABASE_URL)")
	rootCmd.PersistentFlags().String("restaurant", "", "restaurant slug")
	rootCmd.PersistentFlags().Bool("replace", false, "delete the restaurant's current menu first")
	_ = rootCmd.MarkPersistentFlagRequired("restaurant")

	_ = viper.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))

	rootCmd.AddCommand(importCmd, seedCmd)
}

func initConfig() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	viper.AutomaticEnv()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// catalog is what the commands need from the database.
type catalog struct {
	menu        *menu.Service
	restaurants *restaurant.Service
	logger      *zap.Logger
	close       func()
}

func openCatalog(ctx context.Context) (*catalog, error) {
	logger, err := logging.New(viper.GetString("app_env"))
	if err != nil {
		return nil, err
	}

	pool, err := db.ConnectPostgres(ctx, viper.GetString("database_url"), logger)
	if err != nil {
		return nil, err
	}

	restaurants := restaurant.NewService(restaurant.NewPostgresRepository(pool), logger)
	return &catalog{
		menu:        menu.NewService(menu.NewPostgresRepository(pool), restaurants, nil, logger),
		restaurants: restaurants,
		logger:      logger,
		close: func() {
			pool.Close()
			_ = logger.Sync()
		},
	}, nil
}

// load resolves the target restaurant and imports items into it.
func load(cmd *cobra.Command, items []*menu.MenuItem) error {
	ctx := cmd.Context()
	slug, _ := cmd.Flags().GetString("restaurant")
	replace, _ := cmd.Flags().GetBool("replace")

	cat, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.close()

	info, err := cat.restaurants.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("restaurant %q: %w", slug, err)
	}

	if err := cat.menu.ImportItems(ctx, info.ID, items, replace); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d items into %s\n", len(items), info.Name)
	return nil
}
