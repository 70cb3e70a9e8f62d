// Package telemetry reports pageview events from the purchase flow to the
// analytics pipeline. The flow only ever emits two events: one when the
// success screen is shown and one when the failure screen is shown.
package telemetry

import "context"

// CategoryCloudPurchasing is the event category for all purchase-flow events.
const CategoryCloudPurchasing = "cloud-purchasing"

// Pageview event names emitted by the confirmation flow.
const (
	EventPaymentSuccess = "pageview_payment_success"
	EventPaymentFailed  = "pageview_payment_failed"
)

// Event is a single pageview record.
type Event struct {
	Category   string       `json:"category"`
	Name       string       `json:"name"`
	ProductID  string       `json:"product_id,omitempty"`
	HappenedAt int64        `json:"happened_at"`
	Host       *HostContext `json:"host,omitempty"`
}

// HostContext describes the machine the console is running on. Attached to
// every event so support can correlate failure reports with environments.
type HostContext struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
}

// Tracker delivers pageview events.
type Tracker interface {
	TrackPageview(ctx context.Context, e Event) error
}

// Noop discards all events. Used in dev mode and in tests.
type Noop struct{}

func (Noop) TrackPageview(context.Context, Event) error { return nil }
