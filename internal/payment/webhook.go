package payment

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/egil10/nordnotat/internal/marketplace"
)

// WebhookVerifier authenticates inbound Stripe notifications against
// the shared endpoint secret (HMAC-SHA256 with timestamp tolerance).
// It implements marketplace.EventVerifier.
type WebhookVerifier struct {
	secret string
}

// NewWebhookVerifier creates a verifier for the endpoint secret.
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// VerifyEvent checks the signature header against the raw payload and
// decodes the event. The signature and its timestamp are the security
// boundary; an API-version pin mismatch alone is not grounds for
// rejection. Completed-checkout events carry the decoded session.
func (v *WebhookVerifier) VerifyEvent(payload []byte, signature string) (marketplace.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return marketplace.PaymentEvent{}, fmt.Errorf("%w: %v", marketplace.ErrInvalidSignature, err)
	}

	out := marketplace.PaymentEvent{Type: string(event.Type)}
	if out.Type != marketplace.EventCheckoutCompleted {
		return out, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return marketplace.PaymentEvent{}, fmt.Errorf("%w: decoding checkout session: %v", marketplace.ErrMalformedEvent, err)
	}

	var paymentID string
	if session.PaymentIntent != nil {
		paymentID = session.PaymentIntent.ID
	}

	out.Session = &marketplace.CheckoutSession{
		ID:        session.ID,
		PaymentID: paymentID,
		Amount:    session.AmountTotal,
		Metadata:  session.Metadata,
	}
	return out, nil
}
