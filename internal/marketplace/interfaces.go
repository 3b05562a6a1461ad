package marketplace

import (
	"context"
	"io"
)

// DocumentStore persists and reads catalog documents.
// Implementations: storage.Store (Postgres)
type DocumentStore interface {
	InsertDocument(ctx context.Context, doc *Document) error

	// GetDocument returns ErrDocumentNotFound for unknown ids.
	GetDocument(ctx context.Context, id string) (*Document, error)

	ListDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error)
}

// PurchaseStore persists entitlements. The storage layer carries
// uniqueness constraints on (buyer, document) and on the processor
// payment id; those constraints, not the application checks, are the
// correctness boundary for duplicate purchases and redelivery.
// Implementations: storage.Store (Postgres)
type PurchaseStore interface {
	// InsertPurchase is insert-if-absent. It returns false with a nil
	// error when a purchase already holds either uniqueness slot.
	InsertPurchase(ctx context.Context, p *Purchase) (inserted bool, err error)

	HasPurchase(ctx context.Context, buyerID, documentID string) (bool, error)
	ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]Purchase, error)
	ListSalesBySeller(ctx context.Context, sellerID string) ([]Sale, error)
}

// FlashcardStore persists generated study cards.
// Implementations: storage.Store (Postgres)
type FlashcardStore interface {
	InsertFlashcards(ctx context.Context, cards []Flashcard) error
	ListFlashcards(ctx context.Context, documentID string) ([]Flashcard, error)
}

// PaymentProvider opens checkout sessions with the external processor.
// Implementations: payment.StripeProvider
type PaymentProvider interface {
	// CreateSession opens exactly one session carrying the purchase
	// intent as metadata and returns the processor's session id.
	CreateSession(ctx context.Context, params SessionParams) (sessionID string, err error)
}

// SessionParams describes a checkout session to be opened.
type SessionParams struct {
	Intent     PurchaseIntent
	Amount     int64
	SuccessURL string
	CancelURL  string
}

// EventVerifier authenticates inbound processor notifications. The
// signature is the sole authentication mechanism on the webhook path.
// Implementations: payment.WebhookVerifier
type EventVerifier interface {
	VerifyEvent(payload []byte, signature string) (PaymentEvent, error)
}

// MetadataGenerator derives catalog metadata from document text. All
// methods may degrade; callers treat an error as "use the
// deterministic fallback", never as an upload failure.
// Implementations: ai.OpenAIClient (live), ai.Fallback (deterministic)
type MetadataGenerator interface {
	Summarize(ctx context.Context, text string) (string, error)
	Tags(ctx context.Context, text string) ([]string, error)
	CourseCodes(ctx context.Context, text string) ([]string, error)
	Difficulty(ctx context.Context, text string) (int, error)
	Flashcards(ctx context.Context, text string) ([]Flashcard, error)
}

// TextExtractor pulls plain text out of an uploaded file.
// Implementations: ai.PDFExtractor
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// FileStore persists uploaded document files.
// Implementations: files.LocalStore
type FileStore interface {
	Save(ctx context.Context, path string, r io.Reader) error
}

// TokenVerifier resolves a bearer token to a user id.
// Implementations: auth.JWTVerifier
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
