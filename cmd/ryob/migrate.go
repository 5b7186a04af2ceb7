package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ryob/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, logFile := logger.NewFromConfig(cfg.Log)
			defer logFile.Close()

			ctx := cmd.Context()
			be, err := openBackend(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer be.close(ctx)

			return be.migrate(ctx, log)
		},
	}
}
