package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joestump/commas/internal/build"
	"github.com/joestump/commas/internal/config"
	"github.com/joestump/commas/internal/handler"
	"github.com/joestump/commas/internal/metrics"
	"github.com/joestump/commas/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			router, err := buildRouter(cfg)
			if err != nil {
				return err
			}
			metrics.BuildInfo.WithLabelValues(build.Version, build.Commit, build.Branch).Set(1)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s (debug=%t, version %s)", cfg.HTTP.Addr, cfg.Debug, build.Version)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}

// buildRouter picks embedded or on-disk templates and assets and wires the
// page set into the router.
func buildRouter(cfg *config.Config) (http.Handler, error) {
	templates := web.Templates()
	if cfg.Templates.Dir != "" {
		templates = os.DirFS(cfg.Templates.Dir)
	}
	static := web.Static()
	if cfg.Static.Dir != "" {
		static = os.DirFS(cfg.Static.Dir)
	}

	pages, err := handler.NewPageSet(templates, handler.PageOptions{
		Reload: cfg.Debug,
		Minify: cfg.Minify,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("loaded pages: %v", pages.Names())

	return handler.NewRouter(handler.Deps{
		Pages:    pages,
		StaticFS: static,
		Debug:    cfg.Debug,
		Metrics:  cfg.MetricsEnabled,
	}), nil
}
