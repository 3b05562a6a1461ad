package marketplace

import (
	"context"
	"errors"
	"testing"
)

func completedEvent() PaymentEvent {
	return PaymentEvent{
		Type: EventCheckoutCompleted,
		Session: &CheckoutSession{
			ID:        "cs_test_1",
			PaymentID: "pi_test_1",
			Amount:    500,
			Metadata: map[string]string{
				"documentId": "doc-1",
				"buyerId":    "buyer-1",
				// Client-influenced fee fields; must be ignored.
				"platformFee":  "9999",
				"sellerAmount": "1",
			},
		},
	}
}

func TestCompleteCheckout(t *testing.T) {
	t.Run("Given a completed event Then exactly one purchase is recorded with recomputed fees", func(t *testing.T) {
		svc, deps := newTestService(t)

		recorded, err := svc.CompleteCheckout(context.Background(), completedEvent())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !recorded {
			t.Error("recorded = false, want true for a fresh insert")
		}

		if len(deps.purchases.Inserted) != 1 {
			t.Fatalf("purchases inserted = %d, want 1", len(deps.purchases.Inserted))
		}
		p := deps.purchases.Inserted[0]

		if p.BuyerID != "buyer-1" || p.DocumentID != "doc-1" {
			t.Errorf("purchase parties = %s/%s, want buyer-1/doc-1", p.BuyerID, p.DocumentID)
		}
		if p.PaymentID != "pi_test_1" {
			t.Errorf("paymentID = %q, want pi_test_1", p.PaymentID)
		}
		if p.Amount != 500 {
			t.Errorf("amount = %d, want 500", p.Amount)
		}
		// The metadata claimed 9999/1; the split is recomputed from
		// the verified gross amount.
		if p.PlatformFee != 50 || p.SellerAmount != 450 {
			t.Errorf("split = %d/%d, want 50/450", p.PlatformFee, p.SellerAmount)
		}
		if p.PlatformFee+p.SellerAmount != p.Amount {
			t.Errorf("split does not sum: %d + %d != %d", p.PlatformFee, p.SellerAmount, p.Amount)
		}
		if p.ID == "" {
			t.Error("purchase id is empty")
		}
	})

	t.Run("Given a redelivered event Then it acknowledges without a second row", func(t *testing.T) {
		svc, deps := newTestService(t)
		deps.purchases.InsertFunc = func(ctx context.Context, p *Purchase) (bool, error) {
			// The storage constraint reports the row already exists.
			return false, nil
		}

		recorded, err := svc.CompleteCheckout(context.Background(), completedEvent())
		if err != nil {
			t.Fatalf("redelivery must be acknowledged, got %v", err)
		}
		if recorded {
			t.Error("recorded = true, want false for a redelivery")
		}
	})

	t.Run("Given another event type Then it is a no-op", func(t *testing.T) {
		svc, deps := newTestService(t)

		recorded, err := svc.CompleteCheckout(context.Background(), PaymentEvent{Type: "payment_intent.created"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if recorded {
			t.Error("recorded = true, want false for an ignored event")
		}
		if len(deps.purchases.Inserted) != 0 {
			t.Errorf("purchases inserted = %d, want 0", len(deps.purchases.Inserted))
		}
	})

	t.Run("Given a completed event without session data Then it is malformed", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CompleteCheckout(context.Background(), PaymentEvent{Type: EventCheckoutCompleted})
		if !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("err = %v, want ErrMalformedEvent", err)
		}
	})

	t.Run("Given missing intent metadata Then it is malformed and nothing persists", func(t *testing.T) {
		svc, deps := newTestService(t)

		ev := completedEvent()
		delete(ev.Session.Metadata, "buyerId")

		_, err := svc.CompleteCheckout(context.Background(), ev)
		if !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("err = %v, want ErrMalformedEvent", err)
		}
		if len(deps.purchases.Inserted) != 0 {
			t.Errorf("purchases inserted = %d, want 0", len(deps.purchases.Inserted))
		}
	})

	t.Run("Given a missing payment id Then it is malformed and nothing persists", func(t *testing.T) {
		svc, deps := newTestService(t)

		// Without the processor's payment id the uniqueness constraint
		// would collapse unrelated purchases onto the empty string.
		ev := completedEvent()
		ev.Session.PaymentID = ""

		_, err := svc.CompleteCheckout(context.Background(), ev)
		if !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("err = %v, want ErrMalformedEvent", err)
		}
		if len(deps.purchases.Inserted) != 0 {
			t.Errorf("purchases inserted = %d, want 0", len(deps.purchases.Inserted))
		}
	})

	t.Run("Given a non-positive amount Then it is malformed", func(t *testing.T) {
		svc, _ := newTestService(t)

		ev := completedEvent()
		ev.Session.Amount = 0

		if _, err := svc.CompleteCheckout(context.Background(), ev); !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("err = %v, want ErrMalformedEvent", err)
		}
	})

	t.Run("Given an unavailable store Then the error propagates unacknowledged", func(t *testing.T) {
		svc, deps := newTestService(t)
		deps.purchases.InsertFunc = func(ctx context.Context, p *Purchase) (bool, error) {
			return false, ErrStoreUnavailable
		}

		_, err := svc.CompleteCheckout(context.Background(), completedEvent())
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("err = %v, want ErrStoreUnavailable", err)
		}
	})
}
