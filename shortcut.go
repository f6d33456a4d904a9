package moodlews

import (
	"context"
	"strings"
)

// ShortcutFunc is a call with the HTTP method and remote function pre-bound;
// the caller supplies only query parameters.
type ShortcutFunc func(ctx context.Context, params map[string]any) (*Response, error)

// reservedShortcutNames is the built-in client surface shortcuts may not
// shadow. Compared case-insensitively.
var reservedShortcutNames = map[string]struct{}{
	"submit":           {},
	"call":             {},
	"registershortcut": {},
	"invokeshortcut":   {},
	"shortcut":         {},
	"moodleurl":        {},
	"apiurl":           {},
	"token":            {},
}

func shortcutSpecs() []ConstraintSpec {
	method := httpMethodSpec("method")
	method.Required = true
	method.Default = nil
	return []ConstraintSpec{
		identifierSpec("name"),
		method,
		functionNameSpec("wsfunction"),
	}
}

// RegisterShortcut binds a call with method and wsFunction pre-filled under
// name. Registering an existing name silently replaces the prior binding;
// names that would shadow the built-in client surface are rejected.
// Registration is synchronized and safe to race against invocation.
func (c *Client) RegisterShortcut(name, method, wsFunction string) error {
	validated, err := applyConstraints(shortcutSpecs(), map[string]any{
		"name":       name,
		"method":     method,
		"wsfunction": wsFunction,
	})
	if err != nil {
		recordValidationFailure(c.metrics, c.logger, err)
		return err
	}
	if _, reserved := reservedShortcutNames[strings.ToLower(name)]; reserved {
		err := newParamError(ErrorTypeInvalidFormat, "name", "shadows a built-in method", name)
		recordValidationFailure(c.metrics, c.logger, err)
		return err
	}

	boundMethod := validated["method"].(string)
	boundFunction := validated["wsfunction"].(string)

	c.mu.Lock()
	c.shortcuts[name] = func(ctx context.Context, params map[string]any) (*Response, error) {
		return c.Call(ctx, boundMethod, boundFunction, params)
	}
	c.mu.Unlock()

	c.logger.Debug("shortcut registered",
		"name", name,
		"method", boundMethod,
		"wsfunction", boundFunction,
	)
	return nil
}

// MustRegisterShortcut is RegisterShortcut returning the client for fluent
// chaining; it panics on a validation failure.
func (c *Client) MustRegisterShortcut(name, method, wsFunction string) *Client {
	if err := c.RegisterShortcut(name, method, wsFunction); err != nil {
		panic(err)
	}
	return c
}

// Shortcut returns the callable registered under name.
func (c *Client) Shortcut(name string) (ShortcutFunc, bool) {
	c.mu.RLock()
	fn, ok := c.shortcuts[name]
	c.mu.RUnlock()
	return fn, ok
}

// InvokeShortcut dispatches the shortcut registered under name with the
// given query parameters.
func (c *Client) InvokeShortcut(ctx context.Context, name string, params map[string]any) (*Response, error) {
	fn, ok := c.Shortcut(name)
	if !ok {
		return nil, newParamError(ErrorTypeMissingParameter, "name", "names no registered shortcut", name)
	}
	if c.metrics != nil {
		c.metrics.RecordShortcutCall(name)
	}
	return fn(ctx, params)
}
