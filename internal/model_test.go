package internal

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payflow/internal/billing"
	"payflow/internal/telemetry"
)

// spyTracker records every pageview so tests can assert exactly-once
// delivery per terminal transition.
type spyTracker struct {
	events []telemetry.Event
}

func (s *spyTracker) TrackPageview(_ context.Context, e telemetry.Event) error {
	s.events = append(s.events, e)
	return nil
}

func (s *spyTracker) count(name string) int {
	n := 0
	for _, e := range s.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

// testConfig wires the flow against an in-memory client and a spy tracker.
func testConfig(tracker telemetry.Tracker, backCalls *int) Config {
	fake := billing.NewFakeClient()
	return Config{
		BillingDetails:  &billing.Details{CustomerID: "cus_1", PaymentMethodID: "pm_1"},
		SelectedProduct: billing.Product{ID: "cloud-professional", Name: "Cloud Professional", UnitAmount: 2900, Currency: "usd"},
		CurrentProduct:  billing.Product{ID: "cloud-starter", Name: "Cloud Starter", UnitAmount: 900, Currency: "usd"},
		Client: func(context.Context) (billing.Client, error) {
			return fake, nil
		},
		AddPaymentMethod: func(ctx context.Context, c billing.Client, d *billing.Details, devMode bool) (bool, error) {
			return c.AddPaymentMethod(ctx, d, devMode)
		},
		OnBack: func() {
			if backCalls != nil {
				*backCalls++
			}
		},
		ContactSupportLink: "https://help.example.com",
		Tracker:            tracker,
	}
}

// step runs one Update and narrows the returned model back to the concrete type.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drain executes a command so its side effects (telemetry) happen.
func drain(cmd tea.Cmd) {
	if cmd != nil {
		cmd()
	}
}

func TestInitialMountState(t *testing.T) {
	m := InitialModel(testConfig(&spyTracker{}, nil))

	assert.Equal(t, stateProcessing, m.state)
	assert.Equal(t, 0, m.progress)
	assert.False(t, m.failed)
	assert.NotNil(t, m.Init())
}

func TestProgressIncrementsAndParksAtCap(t *testing.T) {
	m := InitialModel(testConfig(&spyTracker{}, nil))

	var cmd tea.Cmd
	for i := 1; i <= maxFakeProgress; i++ {
		m, cmd = step(t, m, progressTickMsg{seq: m.seq})
		assert.Equal(t, i, m.progress, "progress advances by exactly one per tick")
		if i < maxFakeProgress {
			assert.NotNil(t, cmd, "ticker reschedules below the cap")
		}
	}

	// At the cap the ticker stops rescheduling and progress holds.
	assert.Nil(t, cmd)
	m, cmd = step(t, m, progressTickMsg{seq: m.seq})
	assert.Equal(t, maxFakeProgress, m.progress)
	assert.Nil(t, cmd)
	assert.Equal(t, stateProcessing, m.state)
}

func TestSaveFailureIsImmediate(t *testing.T) {
	tracker := &spyTracker{}
	m := InitialModel(testConfig(tracker, nil))

	// Elapsed time is well under the minimum display time, yet failure
	// transitions right away.
	m, cmd := step(t, m, saveResultMsg{seq: m.seq})
	assert.Equal(t, stateFailed, m.state)
	assert.True(t, m.failed)

	drain(cmd)
	assert.Equal(t, 1, tracker.count(telemetry.EventPaymentFailed))
	assert.Equal(t, 0, tracker.count(telemetry.EventPaymentSuccess))
}

func TestSuccessWaitsOutMinimumDisplayTime(t *testing.T) {
	tracker := &spyTracker{}
	m := InitialModel(testConfig(tracker, nil))

	m, cmd := step(t, m, saveResultMsg{seq: m.seq, ok: true})
	assert.Equal(t, stateProcessing, m.state, "success is deferred while under the minimum display time")
	require.NotNil(t, cmd, "a one-shot completion timer must be armed")

	m, cmd = step(t, m, completeMsg{seq: m.seq})
	assert.Equal(t, stateSuccess, m.state)
	assert.Equal(t, 100, m.progress)

	drain(cmd)
	assert.Equal(t, 1, tracker.count(telemetry.EventPaymentSuccess))
}

func TestSuccessIsImmediateAfterMinimumDisplayTime(t *testing.T) {
	tracker := &spyTracker{}
	m := InitialModel(testConfig(tracker, nil))
	m.startedAt = time.Now().Add(-minProcessingTime - time.Second)

	m, cmd := step(t, m, saveResultMsg{seq: m.seq, ok: true})
	assert.Equal(t, stateSuccess, m.state)
	assert.Equal(t, 100, m.progress)

	drain(cmd)
	assert.Equal(t, 1, tracker.count(telemetry.EventPaymentSuccess))
}

func TestSubscriptionFailureFailsTheAttempt(t *testing.T) {
	cfg := testConfig(&spyTracker{}, nil)
	cfg.SubscribeCloudSubscription = func(context.Context, string) (bool, error) {
		return false, nil
	}

	msg := startPaymentSave(cfg, 0)()
	result, ok := msg.(saveResultMsg)
	require.True(t, ok)
	assert.False(t, result.ok)

	m := InitialModel(cfg)
	m, _ = step(t, m, result)
	assert.Equal(t, stateFailed, m.state)
	assert.True(t, m.failed)
}

func TestSaveSequenceSkipsAbsentSubscriptionStep(t *testing.T) {
	cfg := testConfig(&spyTracker{}, nil)
	cfg.SubscribeCloudSubscription = nil

	msg := startPaymentSave(cfg, 0)()
	result, ok := msg.(saveResultMsg)
	require.True(t, ok)
	assert.True(t, result.ok)
}

func TestSaveSequenceTreatsErrorsAsFailure(t *testing.T) {
	cfg := testConfig(&spyTracker{}, nil)
	cfg.AddPaymentMethod = func(context.Context, billing.Client, *billing.Details, bool) (bool, error) {
		return false, errors.New("provider unreachable")
	}

	msg := startPaymentSave(cfg, 0)()
	result, ok := msg.(saveResultMsg)
	require.True(t, ok)
	assert.False(t, result.ok)
	assert.Error(t, result.err)
}

func TestRetryResetsStateAndCallsBackOnce(t *testing.T) {
	backCalls := 0
	tracker := &spyTracker{}
	m := InitialModel(testConfig(tracker, &backCalls))

	// Advance some progress, then fail.
	m, _ = step(t, m, progressTickMsg{seq: m.seq})
	m, _ = step(t, m, progressTickMsg{seq: m.seq})
	m, cmd := step(t, m, saveResultMsg{seq: m.seq})
	drain(cmd)
	require.Equal(t, stateFailed, m.state)

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateProcessing, m.state)
	assert.Equal(t, 0, m.progress)
	assert.False(t, m.failed)
	assert.Equal(t, 1, backCalls)
	assert.Nil(t, cmd, "by default retry hands control back to the caller without restarting")
}

func TestRetryRestartsInPlaceWhenConfigured(t *testing.T) {
	cfg := testConfig(&spyTracker{}, nil)
	cfg.RestartOnRetry = true
	m := InitialModel(cfg)

	m, _ = step(t, m, saveResultMsg{seq: m.seq})
	require.Equal(t, stateFailed, m.state)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateProcessing, m.state)
	assert.NotNil(t, cmd, "configured retry re-dispatches the save sequence")
}

func TestStaleMessagesAreDropped(t *testing.T) {
	backCalls := 0
	tracker := &spyTracker{}
	m := InitialModel(testConfig(tracker, &backCalls))
	staleSeq := m.seq

	// Fail and retry: the generation moves past anything scheduled before.
	m, cmd := step(t, m, saveResultMsg{seq: staleSeq})
	drain(cmd)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateProcessing, m.state)

	// A late resolution of the first attempt must not mutate anything.
	m, cmd = step(t, m, saveResultMsg{seq: staleSeq, ok: true})
	assert.Equal(t, stateProcessing, m.state)
	assert.Equal(t, 0, m.progress)
	assert.Nil(t, cmd)

	m, cmd = step(t, m, progressTickMsg{seq: staleSeq})
	assert.Equal(t, 0, m.progress)
	assert.Nil(t, cmd)

	m, cmd = step(t, m, completeMsg{seq: staleSeq})
	assert.Equal(t, stateProcessing, m.state)
	assert.Nil(t, cmd)

	// And no extra telemetry fired beyond the single failure event.
	assert.Equal(t, 1, tracker.count(telemetry.EventPaymentFailed))
	assert.Equal(t, 0, tracker.count(telemetry.EventPaymentSuccess))
}

func TestTicksAfterTerminalStateAreIgnored(t *testing.T) {
	m := InitialModel(testConfig(&spyTracker{}, nil))
	m.startedAt = time.Now().Add(-minProcessingTime)

	tickSeq := m.seq
	m, _ = step(t, m, saveResultMsg{seq: m.seq, ok: true})
	require.Equal(t, stateSuccess, m.state)

	m, cmd := step(t, m, progressTickMsg{seq: tickSeq})
	assert.Equal(t, 100, m.progress, "a straggler tick never degrades the final 100%")
	assert.Nil(t, cmd)
}

func TestTelemetryFiresOncePerTerminalEntry(t *testing.T) {
	tracker := &spyTracker{}
	m := InitialModel(testConfig(tracker, nil))
	m.startedAt = time.Now().Add(-minProcessingTime)

	m, cmd := step(t, m, saveResultMsg{seq: m.seq, ok: true})
	drain(cmd)

	// Duplicate completion deliveries are stale by construction.
	m, cmd = step(t, m, completeMsg{seq: m.seq - 1})
	drain(cmd)

	assert.Equal(t, 1, tracker.count(telemetry.EventPaymentSuccess))
	assert.Equal(t, 0, tracker.count(telemetry.EventPaymentFailed))
}

func TestCloseInvokesCallbackAndQuits(t *testing.T) {
	closed := 0
	cfg := testConfig(&spyTracker{}, nil)
	cfg.OnClose = func() { closed++ }
	m := InitialModel(cfg)
	m.startedAt = time.Now().Add(-minProcessingTime)

	m, _ = step(t, m, saveResultMsg{seq: m.seq, ok: true})
	require.Equal(t, stateSuccess, m.state)

	_, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, closed)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
