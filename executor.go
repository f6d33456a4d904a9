package moodlews

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

// Response is the uninterpreted result of one dispatched request. The core
// never parses the body; it belongs to the caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Executor dispatches a fully built request descriptor and eventually
// returns the remote response or a transport failure. Implementations own
// timeout enforcement and any retry policy.
type Executor interface {
	Do(ctx context.Context, desc *RequestDescriptor) (*Response, error)
}

// HTTPExecutor is the default Executor. It honors the descriptor's TLS
// policy and timeout, retries transient failures (network errors and 5xx
// responses) with exponential backoff, and treats other non-2xx statuses as
// permanent failures. Safe for concurrent use.
type HTTPExecutor struct {
	client         *http.Client
	insecureClient *http.Client
	maxRetries     uint64
	initialBackoff time.Duration
	logger         hclog.Logger
	metrics        *MetricsCollector
}

// ExecutorOption configures an HTTPExecutor.
type ExecutorOption func(*HTTPExecutor)

// ExecutorHTTPClient sets the underlying HTTP client used for verified
// connections.
func ExecutorHTTPClient(hc *http.Client) ExecutorOption {
	return func(e *HTTPExecutor) {
		if hc != nil {
			e.client = hc
		}
	}
}

// ExecutorMaxRetries sets how many times a transient failure is retried.
func ExecutorMaxRetries(n uint64) ExecutorOption {
	return func(e *HTTPExecutor) {
		e.maxRetries = n
	}
}

// ExecutorInitialBackoff sets the first retry delay.
func ExecutorInitialBackoff(d time.Duration) ExecutorOption {
	return func(e *HTTPExecutor) {
		if d > 0 {
			e.initialBackoff = d
		}
	}
}

// ExecutorLogger sets the logger for attempt-level debug output.
func ExecutorLogger(logger hclog.Logger) ExecutorOption {
	return func(e *HTTPExecutor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// ExecutorMetrics sets the metrics collector.
func ExecutorMetrics(collector *MetricsCollector) ExecutorOption {
	return func(e *HTTPExecutor) {
		e.metrics = collector
	}
}

// NewHTTPExecutor constructs the default transport.
func NewHTTPExecutor(opts ...ExecutorOption) *HTTPExecutor {
	e := &HTTPExecutor{
		client:         &http.Client{},
		maxRetries:     3,
		initialBackoff: 100 * time.Millisecond,
		logger:         hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	// Separate client for descriptors built with acceptUntrustedCert; the
	// verified client never carries the insecure transport.
	e.insecureClient = &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	return e
}

// Do executes the descriptor. The descriptor's timeout bounds the whole
// call including retries.
func (e *HTTPExecutor) Do(ctx context.Context, desc *RequestDescriptor) (*Response, error) {
	if desc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, desc.Timeout)
		defer cancel()
	}

	function := desc.Query.Get(queryKeyFunction)
	start := time.Now()
	if e.metrics != nil {
		e.metrics.RecordRequestStart(desc.Method)
		defer e.metrics.RecordRequestEnd(desc.Method)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(e.newBackOff(), e.maxRetries),
		ctx,
	)

	var resp *Response
	attempt := 0
	op := func() error {
		attempt++
		r, err := e.attempt(ctx, desc)
		if err != nil {
			e.logger.Warn("request attempt failed",
				"method", desc.Method,
				"wsfunction", function,
				"attempt", attempt,
				"error", err,
			)
			return err
		}
		if r.StatusCode >= 500 {
			e.logger.Warn("server error response",
				"method", desc.Method,
				"wsfunction", function,
				"attempt", attempt,
				"status", r.StatusCode,
			)
			return fmt.Errorf("server returned status %d", r.StatusCode)
		}
		if r.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("unexpected status %d", r.StatusCode))
		}
		resp = r
		return nil
	}

	if err := backoff.Retry(op, policy); err != nil {
		if e.metrics != nil {
			e.metrics.RecordRequest(desc.Method, function, "error", time.Since(start))
		}
		return nil, &Error{
			Type:    ErrorTypeTransport,
			Message: "request failed",
			Cause:   err,
		}
	}

	if e.metrics != nil {
		e.metrics.RecordRequest(desc.Method, function, strconv.Itoa(resp.StatusCode), time.Since(start))
	}
	e.logger.Debug("request completed",
		"method", desc.Method,
		"wsfunction", function,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}

func (e *HTTPExecutor) attempt(ctx context.Context, desc *RequestDescriptor) (*Response, error) {
	req, err := buildHTTPRequest(ctx, desc)
	if err != nil {
		return nil, err
	}
	client := e.client
	if !desc.TLSVerify {
		client = e.insecureClient
	}
	httpResp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

// buildHTTPRequest encodes the descriptor. GET sends the query in the URL;
// POST and PUT send it as a form body, the Moodle convention.
func buildHTTPRequest(ctx context.Context, desc *RequestDescriptor) (*http.Request, error) {
	if desc.Method == http.MethodGet {
		return http.NewRequestWithContext(ctx, desc.Method, desc.URI+"?"+desc.Query.Encode(), nil)
	}
	req, err := http.NewRequestWithContext(ctx, desc.Method, desc.URI, strings.NewReader(desc.Query.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func (e *HTTPExecutor) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.initialBackoff
	return b
}
