package billing

import (
	"context"
	"time"
)

// FakeClient is an in-memory Client used in dev mode and in tests. Each
// call sleeps for Latency to exercise the processing screen, then reports
// the configured outcome.
type FakeClient struct {
	FailSave      bool
	FailSubscribe bool
	Latency       time.Duration

	SavedMethods  []string
	Subscriptions []string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

func (f *FakeClient) AddPaymentMethod(ctx context.Context, d *Details, devMode bool) (bool, error) {
	if err := f.wait(ctx); err != nil {
		return false, err
	}
	if f.FailSave {
		return false, nil
	}
	if d != nil {
		f.SavedMethods = append(f.SavedMethods, d.PaymentMethodID)
	}
	return true, nil
}

func (f *FakeClient) SubscribeCloudSubscription(ctx context.Context, productID string) (bool, error) {
	if err := f.wait(ctx); err != nil {
		return false, err
	}
	if f.FailSubscribe {
		return false, nil
	}
	f.Subscriptions = append(f.Subscriptions, productID)
	return true, nil
}

func (f *FakeClient) wait(ctx context.Context) error {
	if f.Latency <= 0 {
		return nil
	}
	select {
	case <-time.After(f.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
