package moodlews

import (
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// apiPath is the fixed REST endpoint segment appended to the base URL.
const apiPath = "webservice/rest/server.php"

// Keys of the declared connection options.
const (
	OptionAcceptUntrustedCert = "acceptUntrustedCert"
	OptionDataFormat          = "dataFormat"
	OptionTimeout             = "timeout"
)

// Client talks to one Moodle-style web-service endpoint. Configuration is
// validated and frozen in New; the only mutation afterwards is shortcut
// registration, which is synchronized, so a Client is safe for concurrent
// use.
type Client struct {
	baseURL string
	token   string
	options map[string]any

	executor Executor
	logger   hclog.Logger
	metrics  *MetricsCollector

	mu        sync.RWMutex
	shortcuts map[string]ShortcutFunc
}

// config stages construction inputs until they pass validation.
type config struct {
	options  map[string]any
	executor Executor
	logger   hclog.Logger
	metrics  *MetricsCollector
}

// Option configures a Client during New.
type Option func(*config)

// constructionSpecs is the constraint table for New. The nested option table
// gives every connection option its default before the type checks run;
// undeclared option keys are preserved for forward compatibility.
func constructionSpecs() []ConstraintSpec {
	return []ConstraintSpec{
		secureURLSpec("baseUrl"),
		tokenSpec("token"),
		{
			Name:    "options",
			Default: map[string]any{},
			Keys: []ConstraintSpec{
				boolSpec(OptionAcceptUntrustedCert, false),
				dataFormatSpec(OptionDataFormat),
				timeoutSpec(OptionTimeout),
			},
		},
	}
}

// New constructs a Client for the service at baseURL authenticated by token.
// The base URL must be an absolute https URL and is normalized to end with a
// path separator; the token must be 32 lowercase hexadecimal characters.
// Construction fails with a structured *Error before any request can be
// attempted, and no partially configured client is ever returned.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	cfg := &config{
		options: map[string]any{},
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	validated, err := applyConstraints(constructionSpecs(), map[string]any{
		"baseUrl": baseURL,
		"token":   token,
		"options": cfg.options,
	})
	if err != nil {
		recordValidationFailure(cfg.metrics, cfg.logger, err)
		return nil, err
	}

	c := &Client{
		baseURL:   validated["baseUrl"].(string),
		token:     validated["token"].(string),
		options:   validated["options"].(map[string]any),
		executor:  cfg.executor,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		shortcuts: make(map[string]ShortcutFunc),
	}
	if c.executor == nil {
		c.executor = NewHTTPExecutor(
			ExecutorLogger(cfg.logger),
			ExecutorMetrics(cfg.metrics),
		)
	}

	c.logger.Debug("client constructed",
		"baseUrl", c.baseURL,
		"dataFormat", c.DataFormat(),
		"timeout", c.Timeout(),
		"acceptUntrustedCert", c.AcceptUntrustedCert(),
	)
	return c, nil
}

// MoodleURL returns the stored base URL verbatim.
func (c *Client) MoodleURL() string {
	return c.baseURL
}

// APIURL returns the REST endpoint derived from the base URL. It is always
// MoodleURL() + the fixed API path.
func (c *Client) APIURL() string {
	return c.baseURL + apiPath
}

// Token returns the web-service token.
func (c *Client) Token() string {
	return c.token
}

// DataFormat returns the configured response format, json or xml.
func (c *Client) DataFormat() string {
	return c.options[OptionDataFormat].(string)
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.options[OptionTimeout].(int)) * time.Millisecond
}

// AcceptUntrustedCert reports whether certificate verification is disabled.
func (c *Client) AcceptUntrustedCert() bool {
	return c.options[OptionAcceptUntrustedCert].(bool)
}

// OptionValue returns the stored option under key. Undeclared keys supplied
// at construction are preserved and readable here.
func (c *Client) OptionValue(key string) (any, bool) {
	v, ok := c.options[key]
	return v, ok
}

// recordValidationFailure reports a rejected parameter to the metrics
// collector and logger, when configured.
func recordValidationFailure(m *MetricsCollector, logger hclog.Logger, err error) {
	verr, ok := err.(*Error)
	if !ok {
		return
	}
	if m != nil {
		m.RecordValidationFailure(verr.Param, verr.Type)
	}
	if logger != nil {
		logger.Warn("validation failed",
			"parameter", verr.Param,
			"reason", string(verr.Type),
			"value", verr.Value,
		)
	}
}
