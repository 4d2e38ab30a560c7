package validation

import (
	"context"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rule checks one submitted value and returns a user-facing message when the
// value is rejected, or an empty string when it passes.
type Rule func(ctx context.Context, value string) string

// Required rejects blank values.
func Required(label string) Rule {
	return func(_ context.Context, value string) string {
		if strings.TrimSpace(value) == "" {
			return label + " is required"
		}
		return ""
	}
}

// Numeric rejects values that do not parse as a number.
func Numeric(label string) Rule {
	return func(_ context.Context, value string) string {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return label + " must be a number"
		}
		return ""
	}
}

// WholeNumber rejects values that do not parse as an integer.
func WholeNumber(label string) Rule {
	return func(_ context.Context, value string) string {
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return label + " must be a whole number"
		}
		return ""
	}
}

// NonNegative rejects negative numbers. Unparseable values pass here; the
// numeric rule placed before it owns that failure.
func NonNegative(label string) Rule {
	return func(_ context.Context, value string) string {
		n, err := strconv.ParseFloat(value, 64)
		if err == nil && n < 0 {
			return label + " cannot be negative"
		}
		return ""
	}
}

// LessThan rejects numbers at or above the bound.
func LessThan(label string, bound float64) Rule {
	return func(_ context.Context, value string) string {
		n, err := strconv.ParseFloat(value, 64)
		if err == nil && n >= bound {
			return label + " must be less than " + strconv.FormatFloat(bound, 'f', -1, 64)
		}
		return ""
	}
}

// ObjectID rejects values that are not well-formed object id hex strings.
func ObjectID(message string) Rule {
	return func(_ context.Context, value string) string {
		if _, err := primitive.ObjectIDFromHex(value); err != nil {
			return message
		}
		return ""
	}
}

// Exists rejects values whose referent the lookup cannot confirm. A lookup
// error counts as a failure so validation never approves a reference the
// store could not verify.
func Exists(lookup func(ctx context.Context, id string) (bool, error), message string) Rule {
	return func(ctx context.Context, value string) string {
		found, err := lookup(ctx, value)
		if err != nil || !found {
			return message
		}
		return ""
	}
}
