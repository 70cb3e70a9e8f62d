// Package internal provides environment-based configuration for the PayFlow console.
//
// Configuration is read from the process environment (optionally seeded
// from a .env file by the entry point). Every setting has a default so the
// console starts in dev mode with no configuration at all.
package internal

import (
	"fmt"
	"os"
	"strconv"

	"payflow/internal/billing"
)

// AppConfig holds everything the entry point needs to wire the flow.
type AppConfig struct {
	// Payment provider
	StripeAPIKey     string
	SubscriptionID   string
	CustomerID       string
	PaymentMethodID  string
	BillingName      string
	BillingEmail     string

	// Products involved in the purchase
	SelectedProduct billing.Product
	CurrentProduct  billing.Product

	// Flow behavior
	DevMode           bool
	ProratedPayment   bool
	RestartOnRetry    bool
	ContactSupportURL string

	// Telemetry
	TelemetryEndpoint string
}

// LoadAppConfig reads configuration from the environment.
func LoadAppConfig() (AppConfig, error) {
	cfg := AppConfig{
		StripeAPIKey:    getenv("STRIPE_API_KEY", ""),
		SubscriptionID:  getenv("STRIPE_SUBSCRIPTION_ID", ""),
		CustomerID:      getenv("STRIPE_CUSTOMER_ID", ""),
		PaymentMethodID: getenv("STRIPE_PAYMENT_METHOD_ID", ""),
		BillingName:     getenv("BILLING_NAME", ""),
		BillingEmail:    getenv("BILLING_EMAIL", ""),

		ContactSupportURL: getenv("PAYFLOW_SUPPORT_URL", "https://support.example.com/billing"),
		TelemetryEndpoint: getenv("PAYFLOW_TELEMETRY_ENDPOINT", ""),
	}

	cfg.DevMode = getenvBool("PAYFLOW_DEV_MODE", cfg.StripeAPIKey == "")
	cfg.ProratedPayment = getenvBool("PAYFLOW_PRORATED", false)
	cfg.RestartOnRetry = getenvBool("PAYFLOW_RESTART_ON_RETRY", false)

	selectedAmount, err := getenvAmount("PAYFLOW_SELECTED_AMOUNT", 2900)
	if err != nil {
		return AppConfig{}, err
	}
	currentAmount, err := getenvAmount("PAYFLOW_CURRENT_AMOUNT", 900)
	if err != nil {
		return AppConfig{}, err
	}

	cfg.SelectedProduct = billing.Product{
		ID:         getenv("PAYFLOW_SELECTED_PRODUCT_ID", "cloud-professional"),
		Name:       getenv("PAYFLOW_SELECTED_PRODUCT_NAME", "Cloud Professional"),
		PriceID:    getenv("PAYFLOW_SELECTED_PRICE_ID", ""),
		UnitAmount: selectedAmount,
		Currency:   getenv("PAYFLOW_CURRENCY", "usd"),
	}
	cfg.CurrentProduct = billing.Product{
		ID:         getenv("PAYFLOW_CURRENT_PRODUCT_ID", "cloud-starter"),
		Name:       getenv("PAYFLOW_CURRENT_PRODUCT_NAME", "Cloud Starter"),
		PriceID:    getenv("PAYFLOW_CURRENT_PRICE_ID", ""),
		UnitAmount: currentAmount,
		Currency:   getenv("PAYFLOW_CURRENCY", "usd"),
	}

	if !cfg.DevMode {
		if cfg.CustomerID == "" || cfg.PaymentMethodID == "" {
			return AppConfig{}, fmt.Errorf("STRIPE_CUSTOMER_ID and STRIPE_PAYMENT_METHOD_ID are required outside dev mode")
		}
	}

	return cfg, nil
}

// BillingDetails assembles the billing record handed to the flow.
func (c AppConfig) BillingDetails() *billing.Details {
	return &billing.Details{
		Name:            c.BillingName,
		Email:           c.BillingEmail,
		CustomerID:      c.CustomerID,
		PaymentMethodID: c.PaymentMethodID,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true"
}

func getenvAmount(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	amount, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%s must not be negative (got %d)", key, amount)
	}
	return amount, nil
}
