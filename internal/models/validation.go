// Package models defines the domain entities (Contact, Task, Appointment,
// Project, User) and the validation rules they enforce. Entities are created
// through constructors that validate every field, mutated through Update
// methods that validate all incoming values before touching state, and
// rebuilt from persistence through Reconstitute factories that skip the
// creation-only rules.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ValidationError reports a domain field that violated its constraints.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// validateTrimmedLength trims value and checks its length is within [1, max].
// Returns the trimmed value so callers store the normalized form.
func validateTrimmedLength(value, field string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", invalid(field, "must not be null or blank")
	}
	if utf8.RuneCountInString(trimmed) > max {
		return "", invalid(field, fmt.Sprintf("must not exceed %d characters", max))
	}
	return trimmed, nil
}

// validateNotBlank trims value and rejects empty strings.
func validateNotBlank(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", invalid(field, "must not be null or blank")
	}
	return trimmed, nil
}

// validatePhone requires exactly ten digit characters.
func validatePhone(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) != phoneLength {
		return "", invalid(field, fmt.Sprintf("must be exactly %d digits", phoneLength))
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return "", invalid(field, "must contain only digits")
		}
	}
	return trimmed, nil
}

// validateDateNotPast rejects zero dates and dates before now. Applies only
// at creation and update; reconstitution from persistence skips it so
// historical records stay readable.
func validateDateNotPast(value time.Time, field string, now time.Time) error {
	if value.IsZero() {
		return invalid(field, "must not be null")
	}
	if value.Before(now) {
		return invalid(field, "must not be in the past")
	}
	return nil
}

// dateOnly truncates a timestamp to its calendar day in UTC. Due dates
// compare at day granularity, not instant granularity.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// trimOptional normalizes nullable link fields: whitespace-only collapses to
// empty, everything else is stored trimmed.
func trimOptional(value string) string {
	return strings.TrimSpace(value)
}

const (
	idMaxLength          = 10
	nameMaxLength        = 20
	descriptionMaxLength = 50
	contactNameMaxLength = 10
	addressMaxLength     = 30
	phoneLength          = 10
)
