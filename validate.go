package moodlews

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// isEmptyValue reports whether v counts as absent for defaulting and
// presence purposes: nil (including a missing map key) or an empty string.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// applyConstraints runs the default → coerce → check pipeline over args for
// each spec in declaration order. It is pure: args is never mutated and the
// returned bag carries the normalized value for every declared parameter
// plus any undeclared args untouched.
//
// Validation fails fast: the first violating parameter in declaration order
// determines the returned *Error and later parameters are not inspected.
func applyConstraints(specs []ConstraintSpec, args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args)+len(specs))
	for k, v := range args {
		out[k] = v
	}

	for _, spec := range specs {
		v := out[spec.Name]
		if isEmptyValue(v) && spec.Default != nil {
			v = spec.Default
		}
		if isEmptyValue(v) {
			if spec.Required {
				return nil, newParamError(ErrorTypeMissingParameter, spec.Name, "is required", v)
			}
			continue
		}

		if spec.Coerce != nil {
			v = spec.Coerce(v)
		}

		if err := validation.Validate(v, spec.Rules...); err != nil {
			return nil, newParamError(spec.failureType(), spec.Name, err.Error(), v)
		}

		if len(spec.Keys) > 0 {
			bag, ok := v.(map[string]any)
			if !ok {
				return nil, newParamError(ErrorTypeInvalidFormat, spec.Name, "must be an options mapping", v)
			}
			nested, err := applyConstraints(spec.Keys, bag)
			if err != nil {
				return nil, err
			}
			v = nested
		}

		out[spec.Name] = v
	}

	return out, nil
}

func (s ConstraintSpec) failureType() ErrorType {
	if s.ErrType == "" {
		return ErrorTypeInvalidFormat
	}
	return s.ErrType
}
