package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/egil10/nordnotat/internal/marketplace"
)

// Marketplace is the domain surface the HTTP layer depends on.
// Implementations: marketplace.Service
type Marketplace interface {
	InitiateCheckout(ctx context.Context, principalID string, req marketplace.CheckoutRequest) (string, error)
	CompleteCheckout(ctx context.Context, ev marketplace.PaymentEvent) (bool, error)
	UploadDocument(ctx context.Context, ownerID string, req marketplace.UploadRequest) (*marketplace.Document, error)
	ListDocuments(ctx context.Context, filter marketplace.DocumentFilter) ([]marketplace.Document, error)
	GetDocument(ctx context.Context, id string) (*marketplace.Document, error)
	DocumentFlashcards(ctx context.Context, principalID, documentID string) ([]marketplace.Flashcard, error)
	ListPurchases(ctx context.Context, buyerID string) ([]marketplace.Purchase, error)
	ListSales(ctx context.Context, sellerID string) ([]marketplace.Sale, error)
}

// Server is the nordnotat HTTP server.
type Server struct {
	svc     Marketplace
	events  marketplace.EventVerifier
	auth    marketplace.TokenVerifier
	router  *gin.Engine
	metrics *Metrics
	log     *slog.Logger
}

// ServerConfig wires a Server.
type ServerConfig struct {
	Service  Marketplace
	Events   marketplace.EventVerifier
	Auth     marketplace.TokenVerifier
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// NewServer creates the server and registers all routes.
func NewServer(cfg ServerConfig) *Server {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		svc:     cfg.Service,
		events:  cfg.Events,
		auth:    cfg.Auth,
		router:  router,
		metrics: NewMetrics(registry),
		log:     logger,
	}

	router.Use(s.metrics.Middleware())

	api := router.Group("/api")
	{
		api.POST("/checkout", s.requireAuth, s.handleCheckout)
		api.POST("/webhook", s.handleWebhook)
		api.POST("/upload", s.requireAuth, s.handleUpload)
		api.GET("/documents", s.handleListDocuments)
		api.GET("/documents/:id", s.handleGetDocument)
		api.GET("/documents/:id/flashcards", s.requireAuth, s.handleFlashcards)
		api.GET("/purchases", s.requireAuth, s.handleListPurchases)
		api.GET("/sales", s.requireAuth, s.handleListSales)
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return s
}

// Run serves until the listener fails. Timeouts bound slow clients so
// no request can hold a handler indefinitely.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
