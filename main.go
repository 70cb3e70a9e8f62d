// Package main implements the entry point and wiring for the PayFlow console.
//
// This package handles:
//   - Environment configuration (optionally seeded from a .env file)
//   - File logging setup (the TUI owns the terminal)
//   - Payment client and telemetry wiring, with dev-mode fallbacks
//   - TUI initialization and execution
//
// The flow itself lives in internal: main only assembles the collaborators
// the confirmation screen calls through.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"payflow/internal"
	"payflow/internal/billing"
	"payflow/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg, err := internal.LoadAppConfig()
	if err != nil {
		fmt.Printf("❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := setupLogging()
	if err != nil {
		fmt.Printf("❌ Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log.WithFields(logrus.Fields{
		"version":  internal.GetVersionString(),
		"dev_mode": cfg.DevMode,
		"product":  cfg.SelectedProduct.ID,
	}).Info("starting purchase confirmation")

	flow := buildFlowConfig(cfg, log)

	p := tea.NewProgram(internal.InitialModel(flow), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("program exited with error")
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

// setupLogging opens the log file and configures logrus to write there.
func setupLogging() (*logrus.Logger, func(), error) {
	logPath := internal.GetLogFilePath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, func() { f.Close() }, nil
}

// buildFlowConfig wires the confirmation flow's collaborators. In dev mode
// everything runs against in-memory fakes so the console can be exercised
// without provider credentials.
func buildFlowConfig(cfg internal.AppConfig, log *logrus.Logger) internal.Config {
	// The payment client is late-bound: the flow mounts immediately and the
	// client is constructed on first use.
	var (
		clientOnce sync.Once
		client     billing.Client
	)
	resolveClient := func(ctx context.Context) (billing.Client, error) {
		clientOnce.Do(func() {
			if cfg.DevMode {
				client = billing.NewFakeClient()
			} else {
				client = billing.NewStripeClient(cfg.StripeAPIKey, cfg.SubscriptionID, log)
			}
		})
		return client, nil
	}

	var tracker telemetry.Tracker = telemetry.Noop{}
	if !cfg.DevMode && cfg.TelemetryEndpoint != "" {
		tracker = telemetry.NewClient(cfg.TelemetryEndpoint, log)
	}

	flow := internal.Config{
		BillingDetails:  cfg.BillingDetails(),
		SelectedProduct: cfg.SelectedProduct,
		CurrentProduct:  cfg.CurrentProduct,

		Client: resolveClient,
		AddPaymentMethod: func(ctx context.Context, c billing.Client, d *billing.Details, devMode bool) (bool, error) {
			return c.AddPaymentMethod(ctx, d, devMode)
		},

		OnBack: func() {
			log.Info("user returned to payment details")
		},
		OnClose: func() {
			log.Info("confirmation closed")
		},

		IsDevMode:          cfg.DevMode,
		IsProratedPayment:  cfg.ProratedPayment,
		RestartOnRetry:     cfg.RestartOnRetry,
		ContactSupportLink: cfg.ContactSupportURL,

		Tracker: tracker,
		Log:     log,
	}

	// Only wire the subscription step when a plan change is part of the
	// purchase; the flow skips it entirely when nil.
	if cfg.SubscriptionID != "" || cfg.DevMode {
		flow.SubscribeCloudSubscription = func(ctx context.Context, productID string) (bool, error) {
			c, err := resolveClient(ctx)
			if err != nil {
				return false, err
			}
			return c.SubscribeCloudSubscription(ctx, productID)
		}
	}

	return flow
}
