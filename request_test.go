package moodlews

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// captureExecutor records the descriptor it is handed and returns a canned
// response. Safe for concurrent use so tests can race invocations.
type captureExecutor struct {
	mu   sync.Mutex
	last *RequestDescriptor
	resp *Response
	err  error
}

func (e *captureExecutor) Do(_ context.Context, desc *RequestDescriptor) (*Response, error) {
	e.mu.Lock()
	e.last = desc
	e.mu.Unlock()
	if e.resp == nil && e.err == nil {
		return &Response{StatusCode: 200}, nil
	}
	return e.resp, e.err
}

func TestSubmitCoercion(t *testing.T) {
	client := mustNew(t, "https://localhost", testToken)

	desc, err := client.Submit("get", "CORE_Fn", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Method != "GET" {
		t.Errorf("expected method GET, got %q", desc.Method)
	}
	if got := desc.Query.Get("wsfunction"); got != "core_fn" {
		t.Errorf("expected wsfunction core_fn, got %q", got)
	}
}

func TestSubmitDefaultsMethod(t *testing.T) {
	client := mustNew(t, "https://localhost", testToken)

	desc, err := client.Submit("", "core_user_get_users", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Method != "GET" {
		t.Errorf("expected empty method to default to GET, got %q", desc.Method)
	}
}

func TestSubmitFixedQueryKeys(t *testing.T) {
	client := mustNew(t, "https://localhost", testToken)

	desc, err := client.Submit("post", "core_course_get_courses", map[string]any{
		"courseid": 5,
		"visible":  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := desc.URI; got != "https://localhost/webservice/rest/server.php" {
		t.Errorf("unexpected URI %q", got)
	}
	if got := desc.Query.Get("wstoken"); got != testToken {
		t.Errorf("expected token in query, got %q", got)
	}
	if got := desc.Query.Get("wsfunction"); got != "core_course_get_courses" {
		t.Errorf("expected function in query, got %q", got)
	}
	if got := desc.Query.Get("moodlewsrestformat"); got != "json" {
		t.Errorf("expected default format json, got %q", got)
	}
	if got := desc.Query.Get("courseid"); got != "5" {
		t.Errorf("expected courseid 5, got %q", got)
	}
	if got := desc.Query.Get("visible"); got != "1" {
		t.Errorf("expected boolean rendered as 1, got %q", got)
	}
}

func TestSubmitReservedKeysProtected(t *testing.T) {
	client := mustNew(t, "https://localhost", testToken)

	desc, err := client.Submit("get", "core_user_get_users", map[string]any{
		"wstoken":            "stolen",
		"wsfunction":         "evil_function",
		"moodlewsrestformat": "xml",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := desc.Query.Get("wstoken"); got != testToken {
		t.Errorf("caller overrode token: %q", got)
	}
	if got := desc.Query.Get("wsfunction"); got != "core_user_get_users" {
		t.Errorf("caller overrode function: %q", got)
	}
	// Format is the one fixed key callers may override.
	if got := desc.Query.Get("moodlewsrestformat"); got != "xml" {
		t.Errorf("expected caller format override xml, got %q", got)
	}
}

func TestSubmitRejections(t *testing.T) {
	client := mustNew(t, "https://localhost", testToken)

	tests := []struct {
		name       string
		method     string
		wsFunction string
		errType    ErrorType
	}{
		{"unsupported method", "DELETE", "core_fn", ErrorTypeInvalidFormat},
		{"malformed function", "get", "core-fn!", ErrorTypeInvalidFormat},
		{"missing function", "get", "", ErrorTypeMissingParameter},
	}

	for _, test := range tests {
		desc, err := client.Submit(test.method, test.wsFunction, nil)
		if err == nil {
			t.Errorf("%s: expected %s, got descriptor %+v", test.name, test.errType, desc)
			continue
		}
		var verr *Error
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *Error, got %T", test.name, err)
			continue
		}
		if verr.Type != test.errType {
			t.Errorf("%s: expected %s, got %s", test.name, test.errType, verr.Type)
		}
	}
}

func TestSubmitTLSAndTimeoutPolicy(t *testing.T) {
	client := mustNew(t, "https://localhost", testToken,
		WithAcceptUntrustedCert(true),
		WithTimeout(250),
	)

	desc, err := client.Submit("get", "core_fn", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.TLSVerify {
		t.Error("expected TLSVerify=false when untrusted certs are accepted")
	}
	if desc.Timeout != 250*time.Millisecond {
		t.Errorf("expected timeout 250ms, got %v", desc.Timeout)
	}

	strict := mustNew(t, "https://localhost", testToken)
	desc, err = strict.Submit("get", "core_fn", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !desc.TLSVerify {
		t.Error("expected TLSVerify=true by default")
	}
}

func TestCallDispatchesToExecutor(t *testing.T) {
	exec := &captureExecutor{resp: &Response{StatusCode: 200, Body: []byte(`[]`)}}
	client := mustNew(t, "https://localhost", testToken, WithExecutor(exec))

	resp, err := client.Call(context.Background(), "get", "core_user_get_users",
		map[string]any{"courseid": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("unexpected status %d", resp.StatusCode)
	}
	if exec.last == nil {
		t.Fatal("executor never received a descriptor")
	}
	if got := exec.last.Query.Get("courseid"); got != "5" {
		t.Errorf("expected courseid forwarded, got %q", got)
	}
}

func TestCallRejectsBeforeDispatch(t *testing.T) {
	exec := &captureExecutor{}
	client := mustNew(t, "https://localhost", testToken, WithExecutor(exec))

	if _, err := client.Call(context.Background(), "get", "CORE-Fn!", nil); err == nil {
		t.Fatal("expected validation failure")
	}
	if exec.last != nil {
		t.Error("no descriptor should reach the executor on a rejected call")
	}
}
