package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/recera/slider/pkg/live"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the carousel as a live page",
		Long: `Serves a page whose carousel is driven over a websocket: every browser
tab gets its own session on the server. Edits to the config file are pushed
to every open tab.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.load(cmd)
			if err != nil {
				return err
			}

			// CLI takes precedence over the config file
			if cmd.Flags().Changed("port") {
				p.file.Serve.Port = port
			}
			if cmd.Flags().Changed("host") {
				p.file.Serve.Host = host
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, p)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().StringVarP(&host, "host", "H", "localhost", "Host to bind to")

	return cmd
}

func runServe(ctx context.Context, p *project) error {
	srv, err := live.NewServer(p.carousel, p.file.Slides, live.WithTitle(p.file.Title))
	if err != nil {
		return err
	}
	defer srv.Close()

	stop, err := p.watch(func(p *project) {
		if err := srv.Update(p.carousel, p.file.Slides); err != nil {
			log.Printf("[Slider] Failed to apply config: %v", err)
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	addr := net.JoinHostPort(p.file.Serve.Host, strconv.Itoa(p.file.Serve.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Slider running at http://%s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Close()
	return httpServer.Shutdown(shutdownCtx)
}
