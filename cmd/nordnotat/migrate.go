package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egil10/nordnotat/internal/config"
	"github.com/egil10/nordnotat/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("database.url is required")
			}
			if err := storage.Migrate(cfg.Database.URL); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}
