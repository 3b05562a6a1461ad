package payment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/egil10/nordnotat/internal/marketplace"
)

const (
	defaultCurrency = "nok"
	requestTimeout  = 15 * time.Second
	lineItemName    = "Document Purchase"
)

// StripeProvider opens Stripe Checkout sessions. It implements
// marketplace.PaymentProvider.
type StripeProvider struct {
	api      *client.API
	backends *stripe.Backends
	currency string
}

// StripeProviderOption configures a StripeProvider.
type StripeProviderOption func(*StripeProvider)

// WithCurrency overrides the session currency (ISO 4217, lowercase).
func WithCurrency(currency string) StripeProviderOption {
	return func(p *StripeProvider) {
		if currency != "" {
			p.currency = currency
		}
	}
}

// WithBackends overrides the Stripe transport. Tests point this at a
// local server.
func WithBackends(backends *stripe.Backends) StripeProviderOption {
	return func(p *StripeProvider) { p.backends = backends }
}

// NewStripeProvider creates a provider with a bounded request timeout.
func NewStripeProvider(apiKey string, opts ...StripeProviderOption) *StripeProvider {
	p := &StripeProvider{currency: defaultCurrency}
	for _, opt := range opts {
		opt(p)
	}

	if p.backends == nil {
		p.backends = stripe.NewBackends(&http.Client{Timeout: requestTimeout})
	}

	p.api = &client.API{}
	p.api.Init(apiKey, p.backends)
	return p
}

// CreateSession opens a card-payment checkout session for a single
// document, carrying the purchase intent as session metadata. Any
// processor-side failure surfaces as marketplace.ErrPaymentSession.
func (p *StripeProvider) CreateSession(ctx context.Context, params marketplace.SessionParams) (string, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(lineItemName),
					},
					UnitAmount: stripe.Int64(params.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}

	sessionParams.AddMetadata("documentId", params.Intent.DocumentID)
	sessionParams.AddMetadata("buyerId", params.Intent.BuyerID)
	sessionParams.AddMetadata("platformFee", strconv.FormatInt(params.Intent.PlatformFee, 10))
	sessionParams.AddMetadata("sellerAmount", strconv.FormatInt(params.Intent.SellerAmount, 10))

	session, err := p.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return "", fmt.Errorf("%w: %v", marketplace.ErrPaymentSession, err)
	}
	return session.ID, nil
}
