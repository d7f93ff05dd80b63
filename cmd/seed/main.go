package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cms-backend/config"
	"cms-backend/seeds"
)

type seedFlags struct {
	clear bool
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cobra.Command {
	flags := &seedFlags{}

	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load the initial website content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&flags.clear, "clear", false, "empty the dataset's tables before inserting")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Seed every dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
	})
	for _, name := range seeds.Names() {
		rootCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: fmt.Sprintf("Seed the %s dataset", name),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), flags, name)
			},
		})
	}
	return rootCmd
}

func run(ctx context.Context, flags *seedFlags, names ...string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(settings.LogLevel, settings.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.ConnectDatabase(settings, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	reports, err := seeds.New(db, logger, seeds.Options{Clear: flags.clear}).Run(ctx, names...)
	if err != nil {
		return err
	}
	for _, rep := range reports {
		for _, t := range rep.Tables {
			status := fmt.Sprintf("inserted %d", t.Inserted)
			if t.Skipped {
				status = "skipped, table not empty"
			}
			fmt.Printf("%-16s %-24s cleared %-4d %s\n", rep.Dataset, t.Table, t.Cleared, status)
		}
	}
	logger.Info("seeding finished", zap.Int("datasets", len(reports)))
	return nil
}
