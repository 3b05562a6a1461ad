package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/egil10/nordnotat/internal/ai"
	"github.com/egil10/nordnotat/internal/auth"
	"github.com/egil10/nordnotat/internal/config"
	"github.com/egil10/nordnotat/internal/files"
	"github.com/egil10/nordnotat/internal/marketplace"
	"github.com/egil10/nordnotat/internal/payment"
	"github.com/egil10/nordnotat/internal/storage"
	"github.com/egil10/nordnotat/internal/web"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the marketplace HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	store, err := storage.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting store: %w", err)
	}
	defer store.Close()

	fileStore, err := files.NewLocalStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("opening file store: %w", err)
	}

	fallback := ai.NewFallback()

	// The live generator is selected here, once; business logic never
	// probes for AI availability.
	var generator marketplace.MetadataGenerator = fallback
	if cfg.OpenAI.APIKey != "" {
		generator = ai.NewOpenAIClient(cfg.OpenAI.APIKey,
			ai.WithBaseURL(cfg.OpenAI.BaseURL),
			ai.WithModel(cfg.OpenAI.Model))
	} else {
		logger.Warn("openai api key not set, metadata generation degraded")
	}

	svc, err := marketplace.NewService(marketplace.ServiceConfig{
		Documents:      store,
		Purchases:      store,
		Flashcards:     store,
		Payments:       payment.NewStripeProvider(cfg.Stripe.SecretKey, payment.WithCurrency(cfg.Stripe.Currency)),
		Metadata:       generator,
		Fallback:       fallback,
		Extractor:      ai.NewPDFExtractor(),
		Files:          fileStore,
		BaseURL:        cfg.Server.BaseURL,
		PlatformFeeBps: cfg.Fees.PlatformBps,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	server := web.NewServer(web.ServerConfig{
		Service: svc,
		Events:  payment.NewWebhookVerifier(cfg.Stripe.WebhookSecret),
		Auth:    auth.NewJWTVerifier(cfg.Auth.Secret),
		Logger:  logger,
	})

	logger.Info("server starting", "addr", cfg.Server.Addr)
	return server.Run(cfg.Server.Addr)
}
