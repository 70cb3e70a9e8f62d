package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/sirupsen/logrus"
)

// pageviewPath is the collector route events are posted to.
const pageviewPath = "/events/pageview"

// Client posts events to an HTTP collector endpoint.
type Client struct {
	http *resty.Client
	log  *logrus.Logger
	host *HostContext
}

// NewClient builds a tracker for the given collector base URL. Host context
// is collected once at startup; if the probe fails events are simply sent
// without it.
func NewClient(endpoint string, log *logrus.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: httpClient,
		log:  log,
		host: collectHostContext(),
	}
}

// TrackPageview implements Tracker.
func (c *Client) TrackPageview(ctx context.Context, e Event) error {
	if e.HappenedAt == 0 {
		e.HappenedAt = time.Now().Unix()
	}
	e.Host = c.host

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(e).
		Post(pageviewPath)
	if err != nil {
		return fmt.Errorf("post pageview: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("telemetry collector returned %s", resp.Status())
	}

	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"category": e.Category,
			"name":     e.Name,
		}).Debug("pageview delivered")
	}
	return nil
}

func collectHostContext() *HostContext {
	info, err := host.Info()
	if err != nil {
		return nil
	}
	return &HostContext{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
	}
}
