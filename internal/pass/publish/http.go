package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jsheehan/pass/internal/logger"
	"github.com/jsheehan/pass/internal/xerrors"
)

// HTTPPublisher posts each Result as JSON to a fixed collector URL.
type HTTPPublisher struct {
	client  *resty.Client
	url     string
	msgType string
	log     *slog.Logger
	box     metricsBox
}

// NewHTTPPublisher builds an HTTPPublisher posting to url. msgType is
// attached to the log context for every request (e.g. "octavebands",
// "wav").
func NewHTTPPublisher(url, msgType string, timeout time.Duration, log *slog.Logger) *HTTPPublisher {
	if log == nil {
		log = logger.Logger()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &HTTPPublisher{
		client:  client,
		url:     url,
		msgType: msgType,
		log:     logger.WithPublish(log, url, msgType),
	}
}

// Publish POSTs result as JSON. Failures are wrapped as PublisherFailure,
// which the ingest driver treats as non-fatal.
func (p *HTTPPublisher) Publish(ctx context.Context, result Result) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(result).
		Post(p.url)

	if err != nil {
		wrapped := xerrors.NewPublisherFailure("publish.http", err)
		p.box.recordFailure(wrapped)
		p.log.Warn("publish request failed", "err", err, "sensor", result.Sensor, "channel", result.Channel)
		return wrapped
	}
	if resp.IsError() {
		wrapped := xerrors.NewPublisherFailure("publish.http", fmt.Errorf("collector responded %s", resp.Status()))
		p.box.recordFailure(wrapped)
		p.log.Warn("publish rejected by collector", "status", resp.Status(), "sensor", result.Sensor, "channel", result.Channel)
		return wrapped
	}

	p.box.recordSuccess()
	return nil
}

// Close releases the underlying HTTP transport's idle connections.
func (p *HTTPPublisher) Close() error {
	p.client.GetClient().CloseIdleConnections()
	return nil
}

// Metrics returns a snapshot of publish activity.
func (p *HTTPPublisher) Metrics() (Metrics, Status) { return p.box.snapshot() }
