package billing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/paymentmethod"
	"github.com/stripe/stripe-go/v74/subscription"
)

// StripeClient implements Client against the Stripe API.
type StripeClient struct {
	// SubscriptionID is the customer's existing subscription, updated in
	// place when a plan change is requested.
	SubscriptionID string

	log *logrus.Logger
}

// NewStripeClient configures the global Stripe key and returns a client
// bound to the given subscription.
func NewStripeClient(apiKey, subscriptionID string, log *logrus.Logger) *StripeClient {
	stripe.Key = apiKey
	return &StripeClient{SubscriptionID: subscriptionID, log: log}
}

// AddPaymentMethod attaches the tokenized payment method to the customer
// and makes it the default for invoices. A missing customer or payment
// method is a failed attempt, not a programming error.
func (c *StripeClient) AddPaymentMethod(ctx context.Context, d *Details, devMode bool) (bool, error) {
	if d == nil || d.CustomerID == "" || d.PaymentMethodID == "" {
		return false, fmt.Errorf("incomplete billing details")
	}

	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"customer": d.CustomerID,
			"dev_mode": devMode,
		}).Info("attaching payment method")
	}

	attachParams := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(d.CustomerID),
	}
	attachParams.Context = ctx
	if _, err := paymentmethod.Attach(d.PaymentMethodID, attachParams); err != nil {
		return false, fmt.Errorf("attach payment method: %w", err)
	}

	updateParams := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(d.PaymentMethodID),
		},
	}
	updateParams.Context = ctx
	if _, err := customer.Update(d.CustomerID, updateParams); err != nil {
		return false, fmt.Errorf("set default payment method: %w", err)
	}

	return true, nil
}

// SubscribeCloudSubscription swaps the subscription's single plan item to
// the price of the selected product, prorating the remainder of the
// current billing period.
func (c *StripeClient) SubscribeCloudSubscription(ctx context.Context, productID string) (bool, error) {
	if c.SubscriptionID == "" {
		return false, fmt.Errorf("no subscription configured")
	}

	getParams := &stripe.SubscriptionParams{}
	getParams.Context = ctx
	sub, err := subscription.Get(c.SubscriptionID, getParams)
	if err != nil {
		return false, fmt.Errorf("load subscription: %w", err)
	}
	if len(sub.Items.Data) == 0 {
		return false, fmt.Errorf("subscription %s has no items", c.SubscriptionID)
	}

	updateParams := &stripe.SubscriptionParams{
		ProrationBehavior: stripe.String("create_prorations"),
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(sub.Items.Data[0].ID),
				Price: stripe.String(productID),
			},
		},
	}
	updateParams.Context = ctx
	if _, err := subscription.Update(c.SubscriptionID, updateParams); err != nil {
		return false, fmt.Errorf("update subscription: %w", err)
	}

	if c.log != nil {
		c.log.WithField("product", productID).Info("subscription updated")
	}
	return true, nil
}
