package marketplace

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// Common test errors
var (
	errMockStore    = errors.New("mock store error")
	errMockPayment  = errors.New("mock payment error")
	errMockMetadata = errors.New("mock metadata error")
	errMockExtract  = errors.New("mock extract error")
	errMockFiles    = errors.New("mock file store error")
)

// MockDocumentStore implements DocumentStore for testing
type MockDocumentStore struct {
	InsertFunc func(ctx context.Context, doc *Document) error
	GetFunc    func(ctx context.Context, id string) (*Document, error)
	ListFunc   func(ctx context.Context, filter DocumentFilter) ([]Document, error)

	Inserted []*Document
}

func (m *MockDocumentStore) InsertDocument(ctx context.Context, doc *Document) error {
	m.Inserted = append(m.Inserted, doc)
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, doc)
	}
	return nil
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, id string) (*Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, ErrDocumentNotFound
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

// MockPurchaseStore implements PurchaseStore for testing
type MockPurchaseStore struct {
	mu sync.Mutex

	InsertFunc func(ctx context.Context, p *Purchase) (bool, error)
	HasFunc    func(ctx context.Context, buyerID, documentID string) (bool, error)
	ByBuyer    func(ctx context.Context, buyerID string) ([]Purchase, error)
	BySeller   func(ctx context.Context, sellerID string) ([]Sale, error)

	Inserted []*Purchase
}

func (m *MockPurchaseStore) InsertPurchase(ctx context.Context, p *Purchase) (bool, error) {
	m.mu.Lock()
	m.Inserted = append(m.Inserted, p)
	m.mu.Unlock()
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	return true, nil
}

func (m *MockPurchaseStore) HasPurchase(ctx context.Context, buyerID, documentID string) (bool, error) {
	if m.HasFunc != nil {
		return m.HasFunc(ctx, buyerID, documentID)
	}
	return false, nil
}

func (m *MockPurchaseStore) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]Purchase, error) {
	if m.ByBuyer != nil {
		return m.ByBuyer(ctx, buyerID)
	}
	return nil, nil
}

func (m *MockPurchaseStore) ListSalesBySeller(ctx context.Context, sellerID string) ([]Sale, error) {
	if m.BySeller != nil {
		return m.BySeller(ctx, sellerID)
	}
	return nil, nil
}

// MockFlashcardStore implements FlashcardStore for testing
type MockFlashcardStore struct {
	InsertFunc func(ctx context.Context, cards []Flashcard) error
	ListFunc   func(ctx context.Context, documentID string) ([]Flashcard, error)

	Inserted []Flashcard
}

func (m *MockFlashcardStore) InsertFlashcards(ctx context.Context, cards []Flashcard) error {
	m.Inserted = append(m.Inserted, cards...)
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, cards)
	}
	return nil
}

func (m *MockFlashcardStore) ListFlashcards(ctx context.Context, documentID string) ([]Flashcard, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, documentID)
	}
	return nil, nil
}

// MockPaymentProvider implements PaymentProvider for testing
type MockPaymentProvider struct {
	CreateFunc func(ctx context.Context, params SessionParams) (string, error)

	Calls []SessionParams
}

func (m *MockPaymentProvider) CreateSession(ctx context.Context, params SessionParams) (string, error) {
	m.Calls = append(m.Calls, params)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return "cs_test_mock", nil
}

// MockMetadataGenerator implements MetadataGenerator for testing.
// The zero value returns fixed values; Fail makes every method error.
type MockMetadataGenerator struct {
	Fail bool

	SummaryValue    string
	TagsValue       []string
	CodesValue      []string
	DifficultyValue int
	CardsValue      []Flashcard
}

func (m *MockMetadataGenerator) Summarize(ctx context.Context, text string) (string, error) {
	if m.Fail {
		return "", errMockMetadata
	}
	return m.SummaryValue, nil
}

func (m *MockMetadataGenerator) Tags(ctx context.Context, text string) ([]string, error) {
	if m.Fail {
		return nil, errMockMetadata
	}
	return m.TagsValue, nil
}

func (m *MockMetadataGenerator) CourseCodes(ctx context.Context, text string) ([]string, error) {
	if m.Fail {
		return nil, errMockMetadata
	}
	return m.CodesValue, nil
}

func (m *MockMetadataGenerator) Difficulty(ctx context.Context, text string) (int, error) {
	if m.Fail {
		return 0, errMockMetadata
	}
	return m.DifficultyValue, nil
}

func (m *MockMetadataGenerator) Flashcards(ctx context.Context, text string) ([]Flashcard, error) {
	if m.Fail {
		return nil, errMockMetadata
	}
	return m.CardsValue, nil
}

// MockTextExtractor implements TextExtractor for testing
type MockTextExtractor struct {
	Text string
	Err  error
}

func (m *MockTextExtractor) ExtractText(data []byte) (string, error) {
	return m.Text, m.Err
}

// MockFileStore implements FileStore for testing
type MockFileStore struct {
	SaveFunc func(ctx context.Context, path string, r io.Reader) error

	Saved []string
}

func (m *MockFileStore) Save(ctx context.Context, path string, r io.Reader) error {
	m.Saved = append(m.Saved, path)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, path, r)
	}
	return nil
}

// testDeps bundles the mocks behind a Service for tests.
type testDeps struct {
	docs      *MockDocumentStore
	purchases *MockPurchaseStore
	cards     *MockFlashcardStore
	payments  *MockPaymentProvider
	metadata  *MockMetadataGenerator
	extractor *MockTextExtractor
	files     *MockFileStore
}

func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()

	deps := &testDeps{
		docs:      &MockDocumentStore{},
		purchases: &MockPurchaseStore{},
		cards:     &MockFlashcardStore{},
		payments:  &MockPaymentProvider{},
		metadata:  &MockMetadataGenerator{},
		extractor: &MockTextExtractor{Text: "extracted text"},
		files:     &MockFileStore{},
	}

	svc, err := NewService(ServiceConfig{
		Documents:      deps.docs,
		Purchases:      deps.purchases,
		Flashcards:     deps.cards,
		Payments:       deps.payments,
		Metadata:       deps.metadata,
		Fallback:       &fallbackGenerator{},
		Extractor:      deps.extractor,
		Files:          deps.files,
		BaseURL:        "http://localhost:8080",
		PlatformFeeBps: DefaultPlatformFeeBps,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, deps
}

// fallbackGenerator is a minimal deterministic stand-in for ai.Fallback
// (the real one lives in another package).
type fallbackGenerator struct{}

func (f *fallbackGenerator) Summarize(ctx context.Context, text string) (string, error) {
	return "fallback summary", nil
}

func (f *fallbackGenerator) Tags(ctx context.Context, text string) ([]string, error) {
	return []string{"academic", "notes"}, nil
}

func (f *fallbackGenerator) CourseCodes(ctx context.Context, text string) ([]string, error) {
	return nil, nil
}

func (f *fallbackGenerator) Difficulty(ctx context.Context, text string) (int, error) {
	return 3, nil
}

func (f *fallbackGenerator) Flashcards(ctx context.Context, text string) ([]Flashcard, error) {
	return nil, nil
}
