package marketplace

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses with errors.Is;
// everything unlisted is treated as an internal failure.
var (
	// ErrUnauthorized means the caller's identity does not match the
	// claimed buyer, or no valid identity was presented.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotEntitled means the caller is authenticated but has no
	// right to the requested content.
	ErrNotEntitled = errors.New("not entitled")

	// ErrDocumentNotFound means the referenced document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrAlreadyPurchased means a purchase already binds this buyer
	// and document.
	ErrAlreadyPurchased = errors.New("already purchased")

	// ErrInvalidInput covers malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSignature means a webhook payload failed HMAC
	// verification and must be rejected without persistence.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedEvent means a verified webhook payload could not be
	// interpreted. Rejected as permanent; the processor should not
	// expect a retry to succeed.
	ErrMalformedEvent = errors.New("malformed webhook event")

	// ErrStoreUnavailable marks transient persistence failures. A
	// webhook request failing with this must not be acknowledged, so
	// the processor's retry can eventually land the record.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPaymentSession means the processor call failed while opening
	// a checkout session. Not retried automatically; the client may
	// resubmit.
	ErrPaymentSession = errors.New("payment session failed")
)
