// Package internal provides the core application model and state management for the PayFlow TUI.
//
// This package implements the Bubble Tea model pattern for the payment
// confirmation flow. The model handles:
//   - The three-state flow machine (processing, success, failed)
//   - Simulated progress while the payment-save sequence runs
//   - Minimum-display-time enforcement for the processing screen
//   - Retry and close transitions driven by user input
//   - One telemetry pageview per terminal screen entry
//
// The Model struct contains all UI state and implements the tea.Model
// interface for integration with the Bubble Tea framework.
package internal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"payflow/internal/billing"
	"payflow/internal/telemetry"
)

// processState represents the confirmation flow's current phase.
// Each state has its own screen and input handling behavior.
type processState int

const (
	stateProcessing processState = iota // save sequence in flight
	stateSuccess                        // terminal: payment saved
	stateFailed                         // terminal: attempt failed
)

// String returns the string representation of a process state.
func (s processState) String() string {
	switch s {
	case stateProcessing:
		return "Processing"
	case stateSuccess:
		return "Success"
	case stateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Config carries the component boundary: billing inputs, the deferred
// payment-client handle, the caller-supplied save operations, navigation
// callbacks, and the ambient collaborators (telemetry, logging, dates).
type Config struct {
	// Billing inputs
	BillingDetails  *billing.Details
	SelectedProduct billing.Product
	CurrentProduct  billing.Product

	// Client resolves the payment client on first use. The handle is
	// late-bound so the flow can mount before the provider SDK is ready.
	Client func(ctx context.Context) (billing.Client, error)

	// AddPaymentMethod saves the payment method. A false result or an
	// error fails the attempt.
	AddPaymentMethod func(ctx context.Context, client billing.Client, d *billing.Details, devMode bool) (bool, error)

	// SubscribeCloudSubscription applies the plan change after a
	// successful save. Nil when no subscription change is needed.
	SubscribeCloudSubscription func(ctx context.Context, productID string) (bool, error)

	// Navigation callbacks
	OnBack  func()
	OnClose func()

	// Flow behavior
	IsDevMode         bool
	IsProratedPayment bool

	// RestartOnRetry re-runs the save sequence in place when the user
	// retries from the failure screen. When false (the default) retry only
	// resets local state and hands control back through OnBack, and the
	// caller is expected to remount the flow.
	RestartOnRetry bool

	ContactSupportLink string

	// NextBillingDate computes the date shown on the success screen.
	// Defaults to billing.NextBillingDate.
	NextBillingDate func(from time.Time) time.Time

	Tracker telemetry.Tracker
	Log     *logrus.Logger
}

// Model represents the complete state of the payment confirmation flow.
// It implements the tea.Model interface.
type Model struct {
	cfg Config

	state    processState
	progress int  // simulated completion percentage, 0..100
	failed   bool // error flag passed through to the failure screen

	// startedAt anchors the minimum-display-time calculation for the
	// current attempt.
	startedAt time.Time

	// seq is the attempt generation. Timer and result messages carry the
	// generation that scheduled them; bumping seq cancels everything still
	// pending from the previous attempt.
	seq int

	// Display dimensions
	width  int
	height int

	// Animation state
	frame int // spinner frame, advanced on each progress tick
}

// InitialModel creates the flow in its mount state: processing, zero
// progress, no error.
func InitialModel(cfg Config) Model {
	if cfg.NextBillingDate == nil {
		cfg.NextBillingDate = billing.NextBillingDate
	}
	if cfg.Tracker == nil {
		cfg.Tracker = telemetry.Noop{}
	}
	return Model{
		cfg:       cfg,
		state:     stateProcessing,
		startedAt: time.Now(),
		width:     100,
		height:    30,
	}
}

// Init starts the save sequence and the progress ticker concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startPaymentSave(m.cfg, m.seq),
		scheduleProgressTick(m.seq),
	)
}

// Update is the central message router. All state mutation happens here,
// on the program's single Update goroutine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case progressTickMsg:
		// Drop ticks from cancelled attempts or after a terminal transition.
		if msg.seq != m.seq || m.state != stateProcessing {
			return m, nil
		}
		if m.progress < maxFakeProgress {
			m.progress++
		}
		m.frame++
		if m.progress < maxFakeProgress {
			return m, scheduleProgressTick(m.seq)
		}
		// Parked at the cap; the ticker stops rescheduling itself.
		return m, nil

	case saveResultMsg:
		if msg.seq != m.seq || m.state != stateProcessing {
			return m, nil
		}
		if !msg.ok {
			return m.fail(msg.err)
		}
		// Failure shows immediately, but success waits out the minimum
		// display time so the processing screen never just flashes.
		remaining := minProcessingTime - time.Since(m.startedAt)
		if remaining > 0 {
			return m, scheduleCompletion(m.seq, remaining)
		}
		return m.complete()

	case completeMsg:
		if msg.seq != m.seq || m.state != stateProcessing {
			return m, nil
		}
		return m.complete()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes user input according to the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSuccess:
		switch msg.String() {
		case "enter", " ", "q", "esc", "ctrl+c":
			if m.cfg.OnClose != nil {
				m.cfg.OnClose()
			}
			return m, tea.Quit
		}

	case stateFailed:
		switch msg.String() {
		case "enter", " ", "esc":
			return m.retry()
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case stateProcessing:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// complete finishes a successful attempt: the ticker is cancelled via the
// generation bump, progress snaps to 100 and exactly one success pageview
// is emitted.
func (m Model) complete() (Model, tea.Cmd) {
	m.seq++
	m.state = stateSuccess
	m.progress = 100
	if m.cfg.Log != nil {
		m.cfg.Log.WithField("product", m.cfg.SelectedProduct.ID).Info("payment confirmed")
	}
	return m, trackPageview(m.cfg.Tracker, m.cfg.Log, telemetry.EventPaymentSuccess, m.cfg.SelectedProduct.ID)
}

// fail moves to the failure screen. Save failures and subscription
// failures collapse to the same screen; the error detail only goes to the
// log, never to the user.
func (m Model) fail(err error) (Model, tea.Cmd) {
	m.seq++
	m.state = stateFailed
	m.failed = true
	if m.cfg.Log != nil {
		entry := m.cfg.Log.WithField("product", m.cfg.SelectedProduct.ID)
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("payment attempt failed")
	}
	return m, trackPageview(m.cfg.Tracker, m.cfg.Log, telemetry.EventPaymentFailed, m.cfg.SelectedProduct.ID)
}

// retry resets the flow from the failure screen and invokes the caller's
// back navigation. The save sequence only restarts in place when
// RestartOnRetry is set.
func (m Model) retry() (Model, tea.Cmd) {
	m.seq++
	m.state = stateProcessing
	m.progress = 0
	m.failed = false
	m.frame = 0
	m.startedAt = time.Now()

	if m.cfg.OnBack != nil {
		m.cfg.OnBack()
	}

	if m.cfg.RestartOnRetry {
		return m, tea.Batch(
			startPaymentSave(m.cfg, m.seq),
			scheduleProgressTick(m.seq),
		)
	}
	return m, nil
}

// View delegates to the screen renderer for the current state.
func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		return m.renderProcessing()
	case stateSuccess:
		return m.renderSuccess()
	case stateFailed:
		return m.renderFailed()
	default:
		return "Unknown screen"
	}
}
