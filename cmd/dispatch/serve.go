package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/dispatch/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schedule to assistants over MCP",
	Long: `Start an MCP HTTP server exposing service calls, certificates and dispute
threads as tools. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := mcpserver.New(st, serveFlags.addr)
		if _, err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
		defer func() {
			if err := srv.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			}
		}()

		fmt.Printf("MCP server listening on %s\n", srv.URL())
		<-ctx.Done()
		fmt.Println("\nShutting down gracefully...")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "127.0.0.1:7420", "Listen address (port 0 picks a free one)")
}
