package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/romangod6/queuer-site/internal/api"
	"github.com/romangod6/queuer-site/internal/utils"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pages with server-side rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			a, err := newApp(cfg, utils.NewConsoleLogger(os.Stdout, "serve"))
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				log.Printf("Build history disabled: %v", err)
			}
			if store != nil {
				defer store.Close()
			}

			server := api.NewServer(cfg.Server.Port, api.NewHandler(a.renderer, a.sitemap, store))

			// Start the server
			go func() {
				log.Printf("Starting server on port %d", cfg.Server.Port)
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()

			waitForShutdown(server)
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

func waitForShutdown(server *api.Server) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down...")

	// Graceful server shutdown
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server shut down gracefully")
}
