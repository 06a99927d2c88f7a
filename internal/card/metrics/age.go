package metrics

import (
	"time"

	"github.com/noelukwa/devcard/internal/card/models"
)

const (
	daysPerYear  = 365
	daysPerMonth = 30
)

// ParseCreatedAt parses the upstream RFC 3339 creation timestamp.
func ParseCreatedAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &MalformedInputError{Field: "createdAt", Reason: "missing"}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &MalformedInputError{Field: "createdAt", Value: value, Reason: "not an RFC 3339 timestamp"}
	}
	return t.UTC(), nil
}

// ComputeAccountAge splits the whole days between createdAt and now into
// 365-day years and 30-day months. Leap years and calendar months are not
// modeled.
func ComputeAccountAge(createdAt, now time.Time) (models.AccountAge, error) {
	if createdAt.After(now) {
		return models.AccountAge{}, &MalformedInputError{
			Field:  "createdAt",
			Value:  createdAt.Format(time.RFC3339),
			Reason: "in the future",
		}
	}

	elapsed := int(now.Sub(createdAt) / (24 * time.Hour))
	rest := elapsed % daysPerYear

	return models.AccountAge{
		Years:  elapsed / daysPerYear,
		Months: rest / daysPerMonth,
		Days:   rest % daysPerMonth,
	}, nil
}
