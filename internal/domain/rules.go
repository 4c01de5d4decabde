package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// AudioExtensions are the accepted audio file suffixes, compared case-insensitively.
var AudioExtensions = []string{".mp3", ".wav", ".m4a"}

// Validatable is implemented by every entity. Validate re-runs all field rules
// against the current state and returns the first failure.
type Validatable interface {
	Validate() error
}

// Check runs rules in order against value and converts the first failure into a
// *ValidationError for field. Rules built in this file carry a Kind as their code.
func Check(field string, value any, rules ...validation.Rule) error {
	err := validation.Validate(value, rules...)
	if err == nil {
		return nil
	}
	var ve validation.Error
	if errors.As(err, &ve) {
		return &ValidationError{Kind: Kind(ve.Code()), Field: field, Message: ve.Error()}
	}
	return fmt.Errorf("validating %s: %w", field, err)
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func ruleError(kind Kind, message string) validation.Error {
	return validation.NewError(string(kind), message)
}

// Required fails with MissingField when the value is empty, nil, or a zero time.
func Required(label string) validation.Rule {
	return validation.Required.ErrorObject(ruleError(KindMissingField, label+" is required"))
}

// Present fails with MissingField when a pointer value is nil. Unlike Required it
// accepts zero values, so 0 can reach a numeric rule.
func Present(label string) validation.Rule {
	return validation.By(func(value any) error {
		if _, isNil := validation.Indirect(value); isNil {
			return ruleError(KindMissingField, label+" is required")
		}
		return nil
	})
}

// Length fails with OutOfRange when the rune count falls outside [min, max].
// A max of 0 leaves the upper bound open. Empty values are left to Required.
func Length(label string, min, max int) validation.Rule {
	msg := fmt.Sprintf("%s must be at least %d characters long", label, min)
	if max > 0 {
		msg = fmt.Sprintf("%s must be between %d and %d characters long", label, min, max)
	}
	return validation.RuneLength(min, max).ErrorObject(ruleError(KindOutOfRange, msg))
}

// Matches fails with InvalidFormat when a non-empty string does not match re.
func Matches(label string, re *regexp.Regexp, hint string) validation.Rule {
	return validation.Match(re).ErrorObject(ruleError(KindInvalidFormat, label+" "+hint))
}

// HasSuffix fails with InvalidFormat unless the string ends in one of suffixes,
// ignoring case.
func HasSuffix(label string, suffixes ...string) validation.Rule {
	return validation.By(func(value any) error {
		v, isNil := validation.Indirect(value)
		s, _ := v.(string)
		if isNil || s == "" {
			return nil
		}
		lower := strings.ToLower(s)
		for _, suffix := range suffixes {
			if strings.HasSuffix(lower, suffix) {
				return nil
			}
		}
		return ruleError(KindInvalidFormat,
			fmt.Sprintf("%s must end in one of %s", label, strings.Join(suffixes, ", ")))
	})
}

// Positive fails with InvalidValue unless an integer value is greater than zero.
func Positive(label string) validation.Rule {
	return validation.By(func(value any) error {
		n, ok := intValue(value)
		if ok && n <= 0 {
			return ruleError(KindInvalidValue, label+" must be greater than 0")
		}
		return nil
	})
}

// NonNegative fails with InvalidValue when an integer value is below zero.
func NonNegative(label string) validation.Rule {
	return validation.By(func(value any) error {
		n, ok := intValue(value)
		if ok && n < 0 {
			return ruleError(KindInvalidValue, label+" cannot be negative")
		}
		return nil
	})
}

// AtMost fails with InvalidValue when an integer value exceeds limit. A nil limit
// disables the rule.
func AtMost(label, limitLabel string, limit *int) validation.Rule {
	return validation.By(func(value any) error {
		n, ok := intValue(value)
		if ok && limit != nil && n > int64(*limit) {
			return ruleError(KindInvalidValue, fmt.Sprintf("%s cannot exceed %s", label, limitLabel))
		}
		return nil
	})
}

// NotBefore fails with InvalidValue when a time value is earlier than other.
// The rule only applies once both times are known.
func NotBefore(label, otherLabel string, other time.Time) validation.Rule {
	return validation.By(func(value any) error {
		v, isNil := validation.Indirect(value)
		t, _ := v.(time.Time)
		if isNil || t.IsZero() || other.IsZero() {
			return nil
		}
		if t.Before(other) {
			return ruleError(KindInvalidValue, fmt.Sprintf("%s must not be before %s", label, otherLabel))
		}
		return nil
	})
}

func intValue(value any) (int64, bool) {
	v, isNil := validation.Indirect(value)
	if isNil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// ValidateEmail checks the basic local@domain shape.
func ValidateEmail(email string) error {
	return Check("email", email, Required("email"), Matches("email", emailPattern, "must be a valid email address"))
}
