package moodlews

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	reFunctionName = regexp.MustCompile(`^[a-z_]+$`)
	reIdentifier   = regexp.MustCompile(`^[A-Za-z_][A-Za-z_]*$`)
	reToken        = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// ConstraintSpec declares how one named parameter is defaulted, coerced and
// checked. Constraint tables are plain data: the same specs are shared by
// construction, call and option-bag validation, and compose without any
// per-call-site logic.
type ConstraintSpec struct {
	// Name is the parameter name reported on failure.
	Name string

	// Required rejects the parameter with MissingParameter when it is
	// absent or empty after defaulting.
	Required bool

	// Default substitutes for an absent, nil or empty-string value before
	// coercion runs. Only ever applied once per parameter.
	Default any

	// Coerce normalizes the value before the rules see it.
	Coerce CoerceFunc

	// Rules are the checks the normalized value must pass.
	Rules []validation.Rule

	// ErrType is the error type reported when a rule fails. Defaults to
	// InvalidFormat.
	ErrType ErrorType

	// Keys, when set, validates the value as a nested options bag: each
	// declared key runs its own default/coerce/check pipeline and unknown
	// keys pass through unchanged.
	Keys []ConstraintSpec
}

// httpMethodSpec accepts GET, POST or PUT, upper-casing input and
// defaulting to GET.
func httpMethodSpec(name string) ConstraintSpec {
	return ConstraintSpec{
		Name:    name,
		Default: "GET",
		Coerce:  coerceUpper,
		Rules: []validation.Rule{
			validation.In("GET", "POST", "PUT").Error("must be one of GET, POST or PUT"),
		},
		ErrType: ErrorTypeInvalidFormat,
	}
}

// dataFormatSpec accepts json or xml, lower-casing input and defaulting
// to json.
func dataFormatSpec(name string) ConstraintSpec {
	return ConstraintSpec{
		Name:    name,
		Default: "json",
		Coerce:  coerceLower,
		Rules: []validation.Rule{
			validation.In("json", "xml").Error("must be json or xml"),
		},
		ErrType: ErrorTypeInvalidFormat,
	}
}

// functionNameSpec accepts a remote web-service function name, lower-cased.
func functionNameSpec(name string) ConstraintSpec {
	return ConstraintSpec{
		Name:     name,
		Required: true,
		Coerce:   coerceLower,
		Rules: []validation.Rule{
			validation.Match(reFunctionName).Error("must contain only lowercase letters and underscores"),
		},
		ErrType: ErrorTypeInvalidFormat,
	}
}

// timeoutSpec accepts any duration descriptor resolving to a positive
// millisecond count, defaulting to 5000 ms.
func timeoutSpec(name string) ConstraintSpec {
	return ConstraintSpec{
		Name:    name,
		Default: 5000,
		Coerce:  coerceMilliseconds,
		Rules: []validation.Rule{
			validation.By(checkPositiveMillis),
		},
		ErrType: ErrorTypeInvalidDuration,
	}
}

// identifierSpec accepts identifier-safe shortcut names.
func identifierSpec(name string) ConstraintSpec {
	return ConstraintSpec{
		Name:     name,
		Required: true,
		Rules: []validation.Rule{
			validation.Match(reIdentifier).Error("must be an identifier of letters and underscores"),
		},
		ErrType: ErrorTypeInvalidFormat,
	}
}

// secureURLSpec accepts an absolute https URL, coerced to end with a path
// separator. Local hosts are permitted.
func secureURLSpec(name string) ConstraintSpec {
	return ConstraintSpec{
		Name:     name,
		Required: true,
		Coerce:   coerceTrailingSlash,
		Rules: []validation.Rule{
			validation.By(checkSecureURL),
		},
		ErrType: ErrorTypeInvalidURL,
	}
}

// tokenSpec accepts a 32-character lowercase hexadecimal token. No coercion:
// tokens are case-sensitive.
func tokenSpec(name string) ConstraintSpec {
	return ConstraintSpec{
		Name:     name,
		Required: true,
		Rules: []validation.Rule{
			validation.Match(reToken).Error("must be 32 lowercase hexadecimal characters"),
		},
		ErrType: ErrorTypeInvalidToken,
	}
}

// boolSpec accepts a bool with the given default.
func boolSpec(name string, def bool) ConstraintSpec {
	return ConstraintSpec{
		Name:    name,
		Default: def,
		Rules: []validation.Rule{
			validation.By(checkBool),
		},
		ErrType: ErrorTypeInvalidFormat,
	}
}

func checkSecureURL(value any) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("must be a URL string")
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a well-formed URL")
	}
	if u.Scheme != "https" {
		return errors.New("must use the https scheme")
	}
	if u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	if !strings.HasSuffix(u.Path, "/") {
		return errors.New("must end with a path separator")
	}
	return nil
}

func checkPositiveMillis(value any) error {
	n, ok := value.(int)
	if !ok {
		return errors.New("must resolve to a millisecond count")
	}
	if n <= 0 {
		return errors.New("must be greater than zero milliseconds")
	}
	return nil
}

func checkBool(value any) error {
	if _, ok := value.(bool); !ok {
		return errors.New("must be a boolean")
	}
	return nil
}
