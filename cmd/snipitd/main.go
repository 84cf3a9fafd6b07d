package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/CuriouslyCory/snippit.fyi/api"
	"github.com/CuriouslyCory/snippit.fyi/internal/config"
	"github.com/CuriouslyCory/snippit.fyi/internal/repository"
)

// Version will be set during build with ldflags
var Version = "0.3.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "snipitd",
		Short:   "snippit.fyi feed server",
		Version: Version,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return err
			}

			r := api.NewRouter(db)
			log.Printf("🚀 snipitd listening on %s", cfg.Server.Addr())
			return r.Run(cfg.Server.Addr())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// NewDatabase migrates on connect.
			if _, err := repository.NewDatabase(cfg); err != nil {
				return err
			}
			fmt.Println("✅ Migrations applied")
			return nil
		},
	}
}
