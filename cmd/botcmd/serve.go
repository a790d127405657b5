package main

import (
	"context"

	"github.com/aretw0/botcmd/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the command engine as a JSON API over HTTP, with Prometheus metrics under /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		port := app.Config.HTTP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		if err := cli.Serve(sigCtx, app, port); err != nil {
			return err
		}
		app.Logger.Info("HTTP Server stopped gracefully", "signal", sigCtx.Signal())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
}
