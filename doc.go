// Package moodlews is a configurable client for Moodle-style REST web
// services built around a declarative parameter validation engine:
//
//   - Constraint tables as data – defaults, coercion and checks per parameter
//   - Best-effort coercion (case folding, URL normalization, duration
//     descriptors to milliseconds) before validation ever rejects
//   - Fail-fast structured errors identifying the offending parameter
//   - Transport-agnostic request descriptors carrying token, function and
//     format query keys with reserved keys protected from callers
//   - Dynamically registered shortcut calls pre-binding method + function
//   - Pluggable request executor; the default retries transient failures
//     with exponential backoff and honors the descriptor's TLS policy
//   - Optional Prometheus metrics and hclog debug logging
//
// Design goals:
//   - No partially configured client ever escapes New
//   - Configuration is immutable post-construction; shortcut registration is
//     the only later mutation and it is synchronized
//   - Pure validation and descriptor building – all I/O lives in Executor
//
// Typical usage:
//
//	client, err := moodlews.New(
//	    "https://moodle.example.edu",
//	    "0123456789abcdef0123456789abcdef",
//	    moodlews.WithDataFormat("json"),
//	    moodlews.WithTimeout("10s"),
//	)
//	if err != nil {
//	    // the *Error names the offending parameter and reason
//	}
//	_ = client.RegisterShortcut("getUsers", "get", "core_user_get_users")
//	resp, err := client.InvokeShortcut(ctx, "getUsers", map[string]any{"courseid": 5})
//
// Responses are returned uninterpreted; parsing the service payload belongs
// to the caller.
package moodlews
