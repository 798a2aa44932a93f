package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func Start() {
	cfg := newCfg("env")
	slog.SetLogLoggerLevel(slog.Level(cfg.GetInt("log.level")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		generateBookingID string
		generateOutDir    string
		generateCompact   bool
	)

	generateCmd := &cobra.Command{
		Use:   "generate-ticket",
		Short: "Generate one ticket PDF to disk",
		Run: func(cmd *cobra.Command, args []string) {
			runGenerateTicketCmd(ctx, generateBookingID, generateOutDir, generateCompact)
		},
	}
	generateCmd.Flags().StringVar(&generateBookingID, "booking-id", "", "booking to render")
	generateCmd.Flags().StringVar(&generateOutDir, "out", ".", "output directory")
	generateCmd.Flags().BoolVar(&generateCompact, "compact", false, "single-page compact mode")
	_ = generateCmd.MarkFlagRequired("booking-id")

	rootCmd := &cobra.Command{}
	cmd := []*cobra.Command{
		{
			Use:   "serve-http",
			Short: "Run HTTP server",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
		},
		{
			Use:   "serve-queue:ticket",
			Short: "Run queue ticket server",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueTicketCmd(ctx)
			},
		},
		{
			Use:   "serve-queue:email",
			Short: "Run queue email server",
			Run: func(cmd *cobra.Command, args []string) {
				runQueueEmailCmd(ctx)
			},
		},
		generateCmd,
		{
			Use:   "dev",
			Short: "Run dev server, for testing purpose",
			Run: func(cmd *cobra.Command, args []string) {
				runHttpServerCmd(ctx)
			},
			PreRun: func(cmd *cobra.Command, args []string) {
				go func() {
					runQueueTicketCmd(ctx)
				}()
				go func() {
					runQueueEmailCmd(ctx)
				}()
			},
		},
	}

	rootCmd.AddCommand(cmd...)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
