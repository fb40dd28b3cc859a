// Package mapping turns parsed T1250 fields into entity columns using
// declarative rule sets.
//
// Mapping runs four phases in a fixed order. Each phase is a pure function
// that returns a new Values map:
//
//  1. ApplyCallbacks transforms every field whose rule has a callback.
//  2. ApplyDefaults fills empty fields that have a default.
//  3. ApplyDefaultEquals copies another field into empty fields that name one.
//     "Item Number" is exempt when the business unit sets item_number_excp.
//  4. Assemble fails on empty required fields and renames fields to columns.
package mapping

import (
	"context"
	"fmt"

	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/domain/record"
)

// ItemNumberField is the field exempted from default-equal resolution when
// item_number_excp is set.
const ItemNumberField = record.FieldItemNumber

// Values is a snapshot of field values keyed by raw field name.
type Values map[string]any

// FromFields converts parser output to Values.
func FromFields(fields record.Fields) Values {
	out := make(Values, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// With returns a copy of v with name set to value.
func (v Values) With(name string, value any) Values {
	out := v.clone()
	out[name] = value
	return out
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// IsEmpty reports whether a value counts as absent: nil or the empty string.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}

// MapFields runs all phases of rules over raw and returns the column values.
func MapFields(ctx context.Context, raw Values, rules RuleSet, cond model.ConditionMap) (model.Columns, error) {
	values, err := ApplyCallbacks(ctx, raw, rules)
	if err != nil {
		return nil, err
	}
	values = ApplyDefaults(values, rules)
	values = ApplyDefaultEquals(values, rules, cond)
	return Assemble(values, rules)
}

// ApplyCallbacks replaces every field that has a callback with the callback's result.
// A field missing from values is passed to its callback as nil.
func ApplyCallbacks(ctx context.Context, values Values, rules RuleSet) (Values, error) {
	out := values.clone()
	for _, fr := range rules {
		if fr.Rule.Callback == nil {
			continue
		}
		v, err := fr.Rule.Callback.Apply(ctx, out[fr.Field])
		if err != nil {
			if me, ok := AsMappingError(err); ok && me.Field == "" {
				me.Field = fr.Field
			}
			return nil, fmt.Errorf("callback for %q: %w", fr.Field, err)
		}
		out[fr.Field] = v
	}
	return out, nil
}

// ApplyDefaults sets empty fields to their rule's default.
func ApplyDefaults(values Values, rules RuleSet) Values {
	out := values.clone()
	for _, fr := range rules {
		if fr.Rule.Default == nil || !IsEmpty(out[fr.Field]) {
			continue
		}
		out[fr.Field] = fr.Rule.Default
	}
	return out
}

// ApplyDefaultEquals copies the current value of the named source field into
// empty fields, in rule order.
func ApplyDefaultEquals(values Values, rules RuleSet, cond model.ConditionMap) Values {
	out := values.clone()
	for _, fr := range rules {
		if fr.Rule.DefaultEqual == "" || !IsEmpty(out[fr.Field]) {
			continue
		}
		if fr.Field == ItemNumberField && cond.ItemNumberExcp {
			continue
		}
		out[fr.Field] = out[fr.Rule.DefaultEqual]
	}
	return out
}

// Assemble checks required fields and maps field names to column names.
// Rules are checked in order, so the error names the first offending field.
func Assemble(values Values, rules RuleSet) (model.Columns, error) {
	cols := make(model.Columns, len(rules))
	for _, fr := range rules {
		v := values[fr.Field]
		if fr.Rule.Required && IsEmpty(v) {
			return nil, &MappingError{Field: fr.Field}
		}
		cols[fr.Rule.Column] = v
	}
	return cols, nil
}
