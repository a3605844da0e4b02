// Package main is the entry point for the media relay service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Conte777/mediarelay/internal/app"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mediarelay",
		Short:         "Telegram bot that relays media links as files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(serveCmd(), webhookCmd(), deriveCmd(), sendCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook relay HTTP service",
		RunE:  runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	fx.New(app.CreateApp()).Run()
	return nil
}
