package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"symptom-checker/internal/config"
	"symptom-checker/internal/core"
	"symptom-checker/internal/db"
	httpserver "symptom-checker/internal/http"
	"symptom-checker/internal/llm"
	"symptom-checker/internal/logger"
	"symptom-checker/internal/session"
)

var (
	version = "dev" // Overwritten at build time

	configPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symptom-checker",
		Short: "Web front-end that turns reported symptoms into a structured summary",
		Long: `symptom-checker serves a form that accepts symptoms, asks a chat completion
provider to explain them, and renders the reply as a summary, possible causes
and advice.  Run without a subcommand to start the web server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		newServeCmd(),
		newAnalyzeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "symptom-checker version %s\n", version)
		},
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Session.Secret == "" {
		log.Warn("SECRET_KEY is not set; sessions will not survive a restart")
	}
	cookies := session.NewCookies(cfg.Session.CookieName, cfg.Session.Secret, cfg.Session.TTL)

	// The API key is not validated here; a bad key shows up as an empty
	// response on the first submission.
	client := llm.NewOpenAIClient(cfg.Provider)
	symptoms := core.NewSymptomService(client, log.Named("analyzer"))

	srv, err := httpserver.NewServer(symptoms, store, cookies, cfg.Provider.Name, log.Named("http"))
	if err != nil {
		return fmt.Errorf("failed to construct server: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("session_backend", cfg.Session.Backend),
			zap.String("model", cfg.Provider.Model),
		)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// openStore builds the configured session backend and returns a function
// releasing its resources.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		store := session.NewRedis(cfg.Redis, cfg.Session.TTL)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.BackendPostgres:
		conn, err := db.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		repo := db.NewRepository(conn, cfg.Session.TTL)
		go purgeExpired(ctx, repo, log)
		return repo, func() { _ = conn.Close() }, nil

	default:
		return session.NewMemoryStore(cfg.Session.TTL), func() {}, nil
	}
}

func purgeExpired(ctx context.Context, repo *db.Repository, log *zap.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.Warn("failed to purge expired session results", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("purged expired session results", zap.Int64("rows", n))
			}
		}
	}
}
