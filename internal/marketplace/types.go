package marketplace

import "time"

// Document is a sellable study document in the catalog.
type Document struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CourseCode  string    `json:"course_code,omitempty"`
	University  string    `json:"university,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Price       int64     `json:"price"` // minor currency units (øre)
	Summary     string    `json:"summary,omitempty"`
	Difficulty  int       `json:"difficulty,omitempty"` // 1..5
	FilePath    string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// Purchase is the durable entitlement created when the payment
// processor confirms a completed checkout session. Never mutated.
type Purchase struct {
	ID           string    `json:"id"`
	BuyerID      string    `json:"buyer_id"`
	DocumentID   string    `json:"document_id"`
	PaymentID    string    `json:"payment_id"`
	Amount       int64     `json:"amount"`
	PlatformFee  int64     `json:"platform_fee"`
	SellerAmount int64     `json:"seller_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sale is a purchase seen from the seller's side of the ledger.
type Sale struct {
	DocumentID    string    `json:"document_id"`
	DocumentTitle string    `json:"document_title"`
	BuyerID       string    `json:"buyer_id"`
	Amount        int64     `json:"amount"`
	SellerAmount  int64     `json:"seller_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// Flashcard is a study card generated from a document's content.
type Flashcard struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Front      string `json:"front"`
	Back       string `json:"back"`
}

// PurchaseIntent is the application data attached to a checkout
// session as metadata. It is not persisted; the webhook side reads the
// identifiers back and recomputes the fee split from the verified
// gross amount.
type PurchaseIntent struct {
	DocumentID   string
	BuyerID      string
	PlatformFee  int64
	SellerAmount int64
}

// CheckoutRequest is the client's request to start a purchase.
type CheckoutRequest struct {
	DocumentID string `json:"documentId"`
	Amount     int64  `json:"amount"`
	BuyerID    string `json:"buyerId"`
}

// UploadRequest carries a new document submission.
type UploadRequest struct {
	Title       string
	Description string
	CourseCode  string
	University  string
	Price       int64
	FileName    string
	File        []byte
}

// DocumentFilter narrows catalog listings.
type DocumentFilter struct {
	Query      string
	University string
	CourseCode string
	Difficulty int
	Limit      int
	Offset     int
}

// PaymentEvent is a signature-verified notification from the payment
// processor. Session is set only for completed-checkout events.
type PaymentEvent struct {
	Type    string
	Session *CheckoutSession
}

// CheckoutSession is the processor's view of a resolved session.
type CheckoutSession struct {
	ID        string
	PaymentID string
	Amount    int64
	Metadata  map[string]string
}

// EventCheckoutCompleted is the only event type that triggers
// persistence; everything else is acknowledged as a no-op.
const EventCheckoutCompleted = "checkout.session.completed"
