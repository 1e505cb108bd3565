package main

import (
	"github.com/spf13/cobra"

	"cutmevents/internal/config"
	"cutmevents/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	setupLogger(cfg)

	return server.NewServer(cfg).Run()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
