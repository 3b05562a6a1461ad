package marketplace

import (
	"context"
	"fmt"
)

// InitiateCheckout validates a purchase request and opens a checkout
// session with the payment processor. Validation short-circuits in
// order: caller identity, document existence, duplicate purchase,
// amount. Nothing is persisted here; the session metadata carries the
// purchase intent and the webhook side re-validates before writing.
func (s *Service) InitiateCheckout(ctx context.Context, principalID string, req CheckoutRequest) (string, error) {
	if principalID == "" || principalID != req.BuyerID {
		return "", ErrUnauthorized
	}

	doc, err := s.docs.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return "", err
	}

	owned, err := s.purchases.HasPurchase(ctx, req.BuyerID, req.DocumentID)
	if err != nil {
		return "", err
	}
	if owned {
		return "", ErrAlreadyPurchased
	}

	// The stored price is authoritative; the client-sent amount only
	// has to agree with it.
	if req.Amount <= 0 || req.Amount != doc.Price {
		return "", fmt.Errorf("%w: amount %d does not match document price %d", ErrInvalidInput, req.Amount, doc.Price)
	}

	platformFee, sellerAmount := ComputeFees(doc.Price, s.feeBps)

	sessionID, err := s.payments.CreateSession(ctx, SessionParams{
		Intent: PurchaseIntent{
			DocumentID:   doc.ID,
			BuyerID:      req.BuyerID,
			PlatformFee:  platformFee,
			SellerAmount: sellerAmount,
		},
		Amount:     doc.Price,
		SuccessURL: fmt.Sprintf("%s/marketplace/%s?success=true", s.baseURL, doc.ID),
		CancelURL:  fmt.Sprintf("%s/marketplace/%s?canceled=true", s.baseURL, doc.ID),
	})
	if err != nil {
		s.log.Error("checkout session failed", "document", doc.ID, "buyer", req.BuyerID, "error", err)
		return "", err
	}

	return sessionID, nil
}
