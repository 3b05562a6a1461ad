package marketplace

import (
	"fmt"
	"log/slog"
)

// Service implements the marketplace operations on top of injected
// collaborators. Construct once at process start; handlers share it.
type Service struct {
	docs      DocumentStore
	purchases PurchaseStore
	cards     FlashcardStore
	payments  PaymentProvider
	metadata  MetadataGenerator
	fallback  MetadataGenerator
	extractor TextExtractor
	files     FileStore

	baseURL string
	feeBps  int
	log     *slog.Logger
}

// ServiceConfig wires a Service. Metadata may be the live client or
// the deterministic stub; Fallback must never fail and is used when
// Metadata degrades.
type ServiceConfig struct {
	Documents  DocumentStore
	Purchases  PurchaseStore
	Flashcards FlashcardStore
	Payments   PaymentProvider
	Metadata   MetadataGenerator
	Fallback   MetadataGenerator
	Extractor  TextExtractor
	Files      FileStore

	BaseURL        string
	PlatformFeeBps int
	Logger         *slog.Logger
}

// NewService validates the wiring and returns a ready Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	switch {
	case cfg.Documents == nil:
		return nil, fmt.Errorf("document store is required")
	case cfg.Purchases == nil:
		return nil, fmt.Errorf("purchase store is required")
	case cfg.Payments == nil:
		return nil, fmt.Errorf("payment provider is required")
	case cfg.Fallback == nil:
		return nil, fmt.Errorf("fallback metadata generator is required")
	}

	feeBps := cfg.PlatformFeeBps
	if feeBps <= 0 {
		feeBps = DefaultPlatformFeeBps
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metadata := cfg.Metadata
	if metadata == nil {
		metadata = cfg.Fallback
	}

	return &Service{
		docs:      cfg.Documents,
		purchases: cfg.Purchases,
		cards:     cfg.Flashcards,
		payments:  cfg.Payments,
		metadata:  metadata,
		fallback:  cfg.Fallback,
		extractor: cfg.Extractor,
		files:     cfg.Files,
		baseURL:   cfg.BaseURL,
		feeBps:    feeBps,
		log:       logger,
	}, nil
}
