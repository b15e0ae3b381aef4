package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/1F47E/geo-region-tree/pkg/server"
)

var (
	serveAddr      string
	serveCacheSize int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve /locate lookups over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Address to listen on (default from config)")
	serveCmd.Flags().IntVar(&serveCacheSize, "cache-size", 0, "Number of cached lookups, 0 disables (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("cache-size") {
		cfg.Server.CacheSize = serveCacheSize
	}

	tree, diags, err := loadTree()
	if err != nil {
		return err
	}
	if n := len(tree.Unreachable()); n > 0 {
		log.Warn().Int("subtrees", n).Msg("Tree has unreachable subtrees, run audit for details")
	}

	srv, err := server.New(tree, server.Options{CacheSize: cfg.Server.CacheSize})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("regions", cfg.Regions).
		Int("leaves", tree.Stats().Leaves).
		Int("diagnostics", len(diags)).
		Int("cache_size", cfg.Server.CacheSize).
		Msg("Web server started")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-cmd.Context().Done():
	}

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
