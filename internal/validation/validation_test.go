package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func priceRules() []Rule {
	return []Rule{
		Required("Price"),
		Numeric("Price"),
		NonNegative("Price"),
		LessThan("Price", 100000),
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("all fields pass", func(t *testing.T) {
		failures := Evaluate(ctx, []Field{
			{Name: "name", Value: strPtr("Desk Lamp"), Rules: []Rule{Required("Name")}},
			{Name: "price", Value: strPtr("149.99"), Rules: priceRules()},
		})
		assert.Nil(t, failures)
	})

	t.Run("first failing rule wins per field", func(t *testing.T) {
		failures := Evaluate(ctx, []Field{
			{Name: "price", Value: strPtr("abc"), Rules: priceRules()},
		})
		require.Len(t, failures, 1)
		assert.Equal(t, "Price must be a number", failures["price"])
	})

	t.Run("fields fail independently", func(t *testing.T) {
		failures := Evaluate(ctx, []Field{
			{Name: "name", Value: strPtr("  "), Rules: []Rule{Required("Name")}},
			{Name: "price", Value: strPtr("123456"), Rules: priceRules()},
			{Name: "quantity", Value: strPtr("4"), Rules: []Rule{Required("Quantity"), WholeNumber("Quantity")}},
		})
		require.Len(t, failures, 2)
		assert.Equal(t, "Name is required", failures["name"])
		assert.Equal(t, "Price must be less than 100000", failures["price"])
	})

	t.Run("nil value skips the field", func(t *testing.T) {
		failures := Evaluate(ctx, []Field{
			{Name: "name", Value: nil, Rules: []Rule{Required("Name")}},
			{Name: "price", Value: strPtr("-5"), Rules: priceRules()},
		})
		require.Len(t, failures, 1)
		assert.Equal(t, "Price cannot be negative", failures["price"])
	})
}

func TestRules(t *testing.T) {
	testCases := []struct {
		name  string
		rule  Rule
		value string
		want  string
	}{
		{name: "required passes", rule: Required("Name"), value: "lamp", want: ""},
		{name: "required rejects empty", rule: Required("Name"), value: "", want: "Name is required"},
		{name: "required rejects whitespace", rule: Required("Name"), value: "   ", want: "Name is required"},
		{name: "numeric passes decimal", rule: Numeric("Price"), value: "12.50", want: ""},
		{name: "numeric rejects text", rule: Numeric("Price"), value: "cheap", want: "Price must be a number"},
		{name: "whole number passes", rule: WholeNumber("Quantity"), value: "3", want: ""},
		{name: "whole number rejects fraction", rule: WholeNumber("Quantity"), value: "3.5", want: "Quantity must be a whole number"},
		{name: "non-negative passes zero", rule: NonNegative("Price"), value: "0", want: ""},
		{name: "non-negative rejects", rule: NonNegative("Quantity"), value: "-2", want: "Quantity cannot be negative"},
		{name: "non-negative defers unparseable", rule: NonNegative("Price"), value: "abc", want: ""},
		{name: "less than passes just below bound", rule: LessThan("Price", 100000), value: "99999.99", want: ""},
		{name: "less than rejects the bound itself", rule: LessThan("Price", 100000), value: "100000", want: "Price must be less than 100000"},
		{name: "less than rejects six digits", rule: LessThan("Price", 100000), value: "123456", want: "Price must be less than 100000"},
		{name: "less than defers unparseable", rule: LessThan("Price", 100000), value: "abc", want: ""},
		{name: "object id passes hex", rule: ObjectID("Invalid category id"), value: "659f1b2e8c3d4a5b6c7d8e9f", want: ""},
		{name: "object id rejects short hex", rule: ObjectID("Invalid category id"), value: "659f1b2e", want: "Invalid category id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rule(context.Background(), tc.value))
		})
	}
}

func TestExists(t *testing.T) {
	const msg = "Category does not exist"

	t.Run("confirmed referent passes", func(t *testing.T) {
		rule := Exists(func(_ context.Context, id string) (bool, error) {
			return id == "known", nil
		}, msg)
		assert.Equal(t, "", rule(context.Background(), "known"))
	})

	t.Run("missing referent fails", func(t *testing.T) {
		rule := Exists(func(context.Context, string) (bool, error) {
			return false, nil
		}, msg)
		assert.Equal(t, msg, rule(context.Background(), "unknown"))
	})

	t.Run("lookup error counts as failure", func(t *testing.T) {
		rule := Exists(func(context.Context, string) (bool, error) {
			return false, errors.New("store offline")
		}, msg)
		assert.Equal(t, msg, rule(context.Background(), "known"))
	})

	t.Run("request context reaches the lookup", func(t *testing.T) {
		type ctxKey struct{}
		var seen any
		rule := Exists(func(ctx context.Context, _ string) (bool, error) {
			seen = ctx.Value(ctxKey{})
			return true, nil
		}, msg)

		ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
		rule(ctx, "known")
		assert.Equal(t, "marker", seen)
	})
}
