package web

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/egil10/nordnotat/internal/marketplace"
)

// MockMarketplace is a function-field mock of the domain surface.
type MockMarketplace struct {
	InitiateCheckoutFunc   func(ctx context.Context, principalID string, req marketplace.CheckoutRequest) (string, error)
	CompleteCheckoutFunc   func(ctx context.Context, ev marketplace.PaymentEvent) (bool, error)
	UploadDocumentFunc     func(ctx context.Context, ownerID string, req marketplace.UploadRequest) (*marketplace.Document, error)
	ListDocumentsFunc      func(ctx context.Context, filter marketplace.DocumentFilter) ([]marketplace.Document, error)
	GetDocumentFunc        func(ctx context.Context, id string) (*marketplace.Document, error)
	DocumentFlashcardsFunc func(ctx context.Context, principalID, documentID string) ([]marketplace.Flashcard, error)
	ListPurchasesFunc      func(ctx context.Context, buyerID string) ([]marketplace.Purchase, error)
	ListSalesFunc          func(ctx context.Context, sellerID string) ([]marketplace.Sale, error)
}

func (m *MockMarketplace) InitiateCheckout(ctx context.Context, principalID string, req marketplace.CheckoutRequest) (string, error) {
	return m.InitiateCheckoutFunc(ctx, principalID, req)
}

func (m *MockMarketplace) CompleteCheckout(ctx context.Context, ev marketplace.PaymentEvent) (bool, error) {
	return m.CompleteCheckoutFunc(ctx, ev)
}

func (m *MockMarketplace) UploadDocument(ctx context.Context, ownerID string, req marketplace.UploadRequest) (*marketplace.Document, error) {
	return m.UploadDocumentFunc(ctx, ownerID, req)
}

func (m *MockMarketplace) ListDocuments(ctx context.Context, filter marketplace.DocumentFilter) ([]marketplace.Document, error) {
	return m.ListDocumentsFunc(ctx, filter)
}

func (m *MockMarketplace) GetDocument(ctx context.Context, id string) (*marketplace.Document, error) {
	return m.GetDocumentFunc(ctx, id)
}

func (m *MockMarketplace) DocumentFlashcards(ctx context.Context, principalID, documentID string) ([]marketplace.Flashcard, error) {
	return m.DocumentFlashcardsFunc(ctx, principalID, documentID)
}

func (m *MockMarketplace) ListPurchases(ctx context.Context, buyerID string) ([]marketplace.Purchase, error) {
	return m.ListPurchasesFunc(ctx, buyerID)
}

func (m *MockMarketplace) ListSales(ctx context.Context, sellerID string) ([]marketplace.Sale, error) {
	return m.ListSalesFunc(ctx, sellerID)
}

// MockEventVerifier is a function-field mock of marketplace.EventVerifier.
type MockEventVerifier struct {
	VerifyEventFunc func(payload []byte, signature string) (marketplace.PaymentEvent, error)
}

func (m *MockEventVerifier) VerifyEvent(payload []byte, signature string) (marketplace.PaymentEvent, error) {
	return m.VerifyEventFunc(payload, signature)
}

// MockTokenVerifier is a function-field mock of marketplace.TokenVerifier.
type MockTokenVerifier struct {
	VerifyFunc func(token string) (string, error)
}

func (m *MockTokenVerifier) Verify(token string) (string, error) {
	return m.VerifyFunc(token)
}

// newTestServer wires a server around the mocks with a fresh metrics
// registry per test.
func newTestServer(t *testing.T, svc *MockMarketplace, events *MockEventVerifier, auth *MockTokenVerifier) *Server {
	t.Helper()

	if auth == nil {
		auth = &MockTokenVerifier{
			VerifyFunc: func(token string) (string, error) { return "user-1", nil },
		}
	}

	return NewServer(ServerConfig{
		Service:  svc,
		Events:   events,
		Auth:     auth,
		Registry: prometheus.NewRegistry(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}
