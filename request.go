package moodlews

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Reserved query keys, always derived from client or call state.
// Caller-supplied values for the token and function keys are discarded; the
// format key may be overridden per call.
const (
	queryKeyToken    = "wstoken"
	queryKeyFunction = "wsfunction"
	queryKeyFormat   = "moodlewsrestformat"
)

// RequestDescriptor is the fully resolved, transport-ready representation of
// one API call. It is immutable once built; one descriptor is produced per
// call and never reused.
type RequestDescriptor struct {
	URI       string
	Method    string
	Query     url.Values
	TLSVerify bool
	Timeout   time.Duration
}

func callSpecs() []ConstraintSpec {
	return []ConstraintSpec{
		httpMethodSpec("method"),
		functionNameSpec("wsfunction"),
	}
}

// Submit validates the call parameters and assembles a RequestDescriptor.
// method is coerced to upper case and defaults to GET when empty; wsFunction
// is coerced to lower case and must match [a-z_]+. params are arbitrary
// scalar query parameters merged alongside the fixed token, function and
// format keys. No network activity happens here.
func (c *Client) Submit(method, wsFunction string, params map[string]any) (*RequestDescriptor, error) {
	validated, err := applyConstraints(callSpecs(), map[string]any{
		"method":     method,
		"wsfunction": wsFunction,
	})
	if err != nil {
		recordValidationFailure(c.metrics, c.logger, err)
		return nil, err
	}

	function := validated["wsfunction"].(string)

	query := url.Values{}
	for k, v := range params {
		query.Set(k, queryValue(v))
	}
	if query.Get(queryKeyFormat) == "" {
		query.Set(queryKeyFormat, c.DataFormat())
	}
	// Token and function are never caller-suppliable.
	query.Set(queryKeyToken, c.token)
	query.Set(queryKeyFunction, function)

	desc := &RequestDescriptor{
		URI:       c.APIURL(),
		Method:    validated["method"].(string),
		Query:     query,
		TLSVerify: !c.AcceptUntrustedCert(),
		// Per-call timeout overrides are a v2 extension point; the stored
		// client option always applies.
		Timeout: c.Timeout(),
	}

	c.logger.Debug("request descriptor built",
		"method", desc.Method,
		"wsfunction", function,
		"uri", desc.URI,
		"tlsVerify", desc.TLSVerify,
	)
	if c.metrics != nil {
		c.metrics.RecordDescriptorBuilt(desc.Method, function)
	}
	return desc, nil
}

// Call builds a descriptor via Submit and dispatches it to the configured
// executor. The response body is returned uninterpreted.
func (c *Client) Call(ctx context.Context, method, wsFunction string, params map[string]any) (*Response, error) {
	desc, err := c.Submit(method, wsFunction, params)
	if err != nil {
		return nil, err
	}
	return c.executor.Do(ctx, desc)
}

// queryValue renders a scalar parameter the way the service expects:
// booleans become 1/0, everything else uses its natural string form.
func queryValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
