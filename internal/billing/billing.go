// Package billing provides the payment-provider domain types for PayFlow.
//
// This package defines:
//   - Billing detail and product records passed into the confirmation flow
//   - The Client interface the flow's save sequence is written against
//   - A Stripe-backed client for production and an in-memory fake for dev mode
//   - Next-billing-date computation for the success screen
package billing

import "context"

// Payment intent status values as reported by the payment provider.
var (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusRequiresConfirmation  = "requires_confirmation"
	StatusRequiresAction        = "requires_action"
	StatusSucceeded             = "succeeded"
	StatusProcessing            = "processing"
	StatusCanceled              = "canceled"
)

// Details holds the billing information collected from the customer before
// the confirmation flow starts. PaymentMethodID references a payment method
// already tokenized by the provider's frontend elements.
type Details struct {
	Name            string
	Email           string
	Country         string
	PostalCode      string
	CustomerID      string
	PaymentMethodID string
}

// Product describes a cloud plan the customer is purchasing or leaving.
type Product struct {
	ID         string
	Name       string
	PriceID    string // provider-side recurring price identifier
	UnitAmount int64  // per-period amount in the smallest currency unit
	Currency   string
}

// Client is the payment-provider boundary the confirmation flow calls
// through. Both operations report a boolean outcome: false (or an error)
// means the current attempt failed and the flow shows the failure screen.
type Client interface {
	// AddPaymentMethod saves the customer's payment method as the default
	// for future invoices.
	AddPaymentMethod(ctx context.Context, d *Details, devMode bool) (bool, error)

	// SubscribeCloudSubscription moves the customer's subscription to the
	// product identified by productID. Only called when a plan change is
	// part of the purchase.
	SubscribeCloudSubscription(ctx context.Context, productID string) (bool, error)
}
