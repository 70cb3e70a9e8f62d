// Package internal provides the asynchronous operations behind the PayFlow confirmation screen.
//
// This module implements:
//   - The payment-save sequence (resolve client, save payment method,
//     optional subscription update) as a background Bubble Tea command
//   - The simulated-progress ticker that animates the processing screen
//   - The delayed-completion timer that enforces the minimum display time
//   - Telemetry pageview commands for the terminal screens
//
// Every timer and result message carries the generation counter of the
// attempt that scheduled it. The model bumps its counter on any exit path
// (success, failure, retry, quit), so a message from a cancelled attempt is
// recognized as stale and dropped without touching state.
package internal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"payflow/internal/telemetry"
)

// Timing constants for the simulated progress display.
const (
	// minProcessingTime is the minimum time the processing screen is shown,
	// even when the provider answers instantly.
	minProcessingTime = 5 * time.Second

	// maxFakeProgress is where the simulated progress parks until the real
	// operation resolves. Only the success transition writes 100.
	maxFakeProgress = 95

	// progressTickInterval paces the ticker so the bar reaches
	// maxFakeProgress right as minProcessingTime elapses (~52.6ms).
	progressTickInterval = minProcessingTime / maxFakeProgress
)

// progressTickMsg advances the simulated progress bar by one step.
type progressTickMsg struct {
	seq int
}

// saveResultMsg reports the outcome of one payment-save attempt.
type saveResultMsg struct {
	seq int
	ok  bool
	err error
}

// completeMsg fires after the minimum-display delay to finish a successful
// attempt.
type completeMsg struct {
	seq int
}

// scheduleProgressTick arms the next progress step for the given attempt.
func scheduleProgressTick(seq int) tea.Cmd {
	return tea.Tick(progressTickInterval, func(time.Time) tea.Msg {
		return progressTickMsg{seq: seq}
	})
}

// scheduleCompletion arms the one-shot completion timer that pads the
// processing screen out to the minimum display time.
func scheduleCompletion(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return completeMsg{seq: seq}
	})
}

// startPaymentSave runs the save sequence in the background and reports a
// single saveResultMsg. The sequence resolves the deferred payment client,
// saves the payment method, then applies the optional subscription change.
// A falsy result or an error from either collaborator fails the attempt;
// an unexpected error is never left pending.
func startPaymentSave(cfg Config, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		client, err := cfg.Client(ctx)
		if err != nil {
			return saveResultMsg{seq: seq, err: err}
		}

		ok, err := cfg.AddPaymentMethod(ctx, client, cfg.BillingDetails, cfg.IsDevMode)
		if err != nil || !ok {
			return saveResultMsg{seq: seq, err: err}
		}

		if cfg.SubscribeCloudSubscription != nil {
			ok, err = cfg.SubscribeCloudSubscription(ctx, cfg.SelectedProduct.ID)
			if err != nil || !ok {
				return saveResultMsg{seq: seq, err: err}
			}
		}

		return saveResultMsg{seq: seq, ok: true}
	}
}

// trackPageview emits one pageview event for a terminal screen. Delivery
// failures are logged and swallowed; telemetry never blocks the flow.
func trackPageview(tracker telemetry.Tracker, log *logrus.Logger, name, productID string) tea.Cmd {
	return func() tea.Msg {
		if tracker == nil {
			return nil
		}
		err := tracker.TrackPageview(context.Background(), telemetry.Event{
			Category:  telemetry.CategoryCloudPurchasing,
			Name:      name,
			ProductID: productID,
		})
		if err != nil && log != nil {
			log.WithError(err).WithField("event", name).Warn("pageview delivery failed")
		}
		return nil
	}
}
