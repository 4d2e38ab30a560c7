// Package validation evaluates submitted form fields against ordered rule
// lists. Fields are independent of each other and each field records only
// its first failing rule's message, so handlers can return one message per
// field no matter how many rules follow it.
package validation

import "context"

// Field binds a submitted value to the ordered rules that judge it. A nil
// Value marks the field as absent from the request, which skips every rule;
// update handlers use this to validate only the fields a client sent.
type Field struct {
	Name  string
	Value *string
	Rules []Rule
}

// Evaluate runs every field's rules in order and returns a map from field
// name to the first failing rule's message. Fields whose Value is nil are
// skipped. A nil map means every present field passed.
func Evaluate(ctx context.Context, fields []Field) map[string]string {
	var failures map[string]string

	for _, field := range fields {
		if field.Value == nil {
			continue
		}
		for _, rule := range field.Rules {
			msg := rule(ctx, *field.Value)
			if msg == "" {
				continue
			}
			if failures == nil {
				failures = make(map[string]string)
			}
			failures[field.Name] = msg
			break
		}
	}

	return failures
}
