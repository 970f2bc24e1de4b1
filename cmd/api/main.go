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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/farmai/farmai/backend/internal/config"
	"github.com/farmai/farmai/backend/internal/handler"
	"github.com/farmai/farmai/backend/internal/logging"
	"github.com/farmai/farmai/backend/internal/model/plant"
	"github.com/farmai/farmai/backend/internal/model/scan"
	"github.com/farmai/farmai/backend/internal/service/ai"
	"github.com/farmai/farmai/backend/internal/service/chat"
	"github.com/farmai/farmai/backend/internal/service/settings"
)

var (
	envFile string
	addr    string
)

func main() {
	root := &cobra.Command{
		Use:           "farmai-api",
		Short:         "FarmAI assistant backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}

	root.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.Flags().StringVar(&addr, "addr", "", "listen address, overrides PORT")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "farmai-api:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A missing dotenv file is fine; the process environment still applies.
	dotenvErr := godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if addr != "" {
		if cfg.Server, err = config.ParseAddr(addr); err != nil {
			return err
		}
	}

	logger, restore, err := logging.Install(cfg.Log)
	if err != nil {
		return err
	}
	defer restore()

	if dotenvErr != nil {
		logger.Debug("dotenv file not loaded", zap.String("path", envFile), zap.Error(dotenvErr))
	}

	plants, err := plant.Catalog(cfg.Assistant.CatalogPath)
	if err != nil {
		return err
	}
	plantStore := plant.NewMemoryStore(plants)
	logger.Info("plant catalog loaded", zap.Int("plants", len(plants)), zap.String("source", cfg.Assistant.CatalogPath))

	aiService, err := ai.NewService(ctx, cfg.Assistant)
	if err != nil {
		return err
	}
	chatService := chat.NewService(aiService, chat.WithReplyDelay(cfg.Assistant.ReplyDelay))

	router := handler.NewRouter(handler.Deps{
		Plants:          plantStore,
		Scans:           scan.NewMemoryStore(scan.Seed()),
		Chat:            chatService,
		AI:              aiService,
		Settings:        settings.NewService(),
		DefaultPlant:    cfg.Assistant.DefaultPlant,
		WeatherLocation: cfg.Insights.WeatherLocation,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("FarmAI backend listening",
		zap.String("addr", srv.Addr),
		zap.Duration("replyDelay", cfg.Assistant.ReplyDelay),
		zap.Bool("stream", cfg.Assistant.StreamResponse),
	)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		zap.L().Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
