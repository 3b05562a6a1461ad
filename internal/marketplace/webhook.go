package marketplace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session metadata keys set at initiation and read back on completion.
const (
	metaDocumentID = "documentId"
	metaBuyerID    = "buyerId"
)

// CompleteCheckout records the entitlement for a completed checkout
// session, reporting whether a new row was written. The event must
// already be signature-verified. Event types other than checkout
// completion are acknowledged as no-ops. The insert is idempotent:
// redelivered events find the storage constraint and are acknowledged
// without a second row (recorded=false). Fee fields embedded in the
// session metadata are client-influenced and ignored; the split is
// recomputed from the verified gross amount.
func (s *Service) CompleteCheckout(ctx context.Context, ev PaymentEvent) (bool, error) {
	if ev.Type != EventCheckoutCompleted {
		return false, nil
	}
	if ev.Session == nil {
		return false, fmt.Errorf("%w: completed event without session data", ErrMalformedEvent)
	}

	sess := ev.Session
	documentID := sess.Metadata[metaDocumentID]
	buyerID := sess.Metadata[metaBuyerID]
	if documentID == "" || buyerID == "" {
		return false, fmt.Errorf("%w: session %s missing purchase intent metadata", ErrMalformedEvent, sess.ID)
	}
	// The payment id is the processor-side deduplication key; a
	// completed session without one cannot be recorded safely.
	if sess.PaymentID == "" {
		return false, fmt.Errorf("%w: session %s missing payment id", ErrMalformedEvent, sess.ID)
	}
	if sess.Amount <= 0 {
		return false, fmt.Errorf("%w: session %s has non-positive amount %d", ErrMalformedEvent, sess.ID, sess.Amount)
	}

	platformFee, sellerAmount := ComputeFees(sess.Amount, s.feeBps)

	purchase := &Purchase{
		ID:           uuid.NewString(),
		BuyerID:      buyerID,
		DocumentID:   documentID,
		PaymentID:    sess.PaymentID,
		Amount:       sess.Amount,
		PlatformFee:  platformFee,
		SellerAmount: sellerAmount,
		CreatedAt:    time.Now().UTC(),
	}

	inserted, err := s.purchases.InsertPurchase(ctx, purchase)
	if err != nil {
		return false, err
	}
	if !inserted {
		s.log.Info("purchase already recorded", "session", sess.ID, "payment", sess.PaymentID)
		return false, nil
	}

	s.log.Info("purchase recorded",
		"purchase", purchase.ID,
		"document", documentID,
		"buyer", buyerID,
		"amount", sess.Amount,
		"platform_fee", platformFee,
		"seller_amount", sellerAmount)
	return true, nil
}
