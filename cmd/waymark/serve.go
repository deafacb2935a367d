package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/waymark"
	"github.com/aretw0/waymark/internal/cli"
	"github.com/aretw0/waymark/internal/metrics"
	"github.com/aretw0/waymark/internal/presentation/tui"
	httpAdapter "github.com/aretw0/waymark/pkg/adapters/http"
	"github.com/aretw0/waymark/pkg/codec"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves stored records at GET /{kind}/{id} with their links. The format is
negotiated from the Accept header; ?links=false serves the plain representation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		backend, _ := cmd.Flags().GetString("store")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		seed, _ := cmd.Flags().GetString("seed")
		baseURL, _ := cmd.Flags().GetString("base-url")
		formatName, _ := cmd.Flags().GetString("default-format")
		quiet, _ := cmd.Flags().GetBool("quiet")

		defaultFormat, err := codec.ParseFormat(formatName)
		if err != nil {
			return err
		}

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		recorder := metrics.New()
		engine, err := newEngine(cmd, logger, recorder)
		if err != nil {
			return err
		}

		ctx := context.Background()
		store, closeStore, err := cli.OpenStore(ctx, cli.StoreOptions{
			Backend:   backend,
			Dir:       dataDir,
			RedisAddr: redisAddr,
			RedisDB:   redisDB,
			Password:  os.Getenv("WAYMARK_REDIS_PASSWORD"),
		})
		if err != nil {
			return err
		}
		defer closeStore()

		if seed != "" {
			n, err := cli.Seed(ctx, store, seed, logger)
			if err != nil {
				return err
			}
			logger.Info("store seeded", "records", n, "file", seed)
		}

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(recorder.Handler()),
			httpAdapter.WithDefaultFormat(defaultFormat),
		}
		if baseURL != "" {
			opts = append(opts, httpAdapter.WithBaseURL(baseURL))
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpAdapter.NewHandler(engine, store, opts...),
		}

		if !quiet {
			tui.PrintBanner(cmd.OutOrStdout(), waymark.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting waymark server", "addr", srv.Addr, "store", backend, "kinds", engine.Catalog().Kinds())
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "error", err)
				}
			}
			logger.Info("waymark server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "memory", "Record store: memory, file, redis")
	serveCmd.Flags().String("data-dir", "", "Directory of the file store (default .waymark/resources)")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	serveCmd.Flags().Int("redis-db", 0, "Redis database for the redis store")
	serveCmd.Flags().String("seed", "", "Records file loaded into the store at startup")
	serveCmd.Flags().String("base-url", "", "Fixed base URL for link hrefs (default: derived from each request)")
	serveCmd.Flags().String("default-format", "json", "Format served when the client states no preference")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
