package mapping

import (
	"errors"
	"fmt"

	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/domain/record"
)

// Rule describes how one raw field becomes one column.
type Rule struct {
	Column       string
	Required     bool
	Default      any
	DefaultEqual string
	Callback     Callback
}

// FieldRule binds a rule to its raw field name.
type FieldRule struct {
	Field string
	Rule  Rule
}

// RuleSet is an ordered list of field rules for one entity shape.
type RuleSet []FieldRule

// Columns returns the output column names in rule order.
func (rs RuleSet) Columns() []string {
	out := make([]string, len(rs))
	for i, fr := range rs {
		out[i] = fr.Rule.Column
	}
	return out
}

// Rule returns the rule for field.
func (rs RuleSet) Rule(field string) (Rule, bool) {
	for _, fr := range rs {
		if fr.Field == field {
			return fr.Rule, true
		}
	}
	return Rule{}, false
}

// Validate checks that fields and columns are unique and that no field is its
// own default-equal source.
func (rs RuleSet) Validate() error {
	fields := make(map[string]struct{}, len(rs))
	columns := make(map[string]struct{}, len(rs))
	for _, fr := range rs {
		if fr.Field == "" || fr.Rule.Column == "" {
			return errors.New("rule field and column are required")
		}
		if _, dup := fields[fr.Field]; dup {
			return fmt.Errorf("duplicate rule for field %q", fr.Field)
		}
		if _, dup := columns[fr.Rule.Column]; dup {
			return fmt.Errorf("duplicate column %q", fr.Rule.Column)
		}
		fields[fr.Field] = struct{}{}
		columns[fr.Rule.Column] = struct{}{}
	}
	for _, fr := range rs {
		if fr.Rule.DefaultEqual == fr.Field {
			return fmt.Errorf("field %q: default-equal refers to itself", fr.Field)
		}
	}
	return nil
}

// Resolve returns a copy of the rule set with every Named callback replaced by
// the registry's callback. Unknown names fail.
func (rs RuleSet) Resolve(reg Registry) (RuleSet, error) {
	out := make(RuleSet, len(rs))
	for i, fr := range rs {
		out[i] = fr
		name, ok := fr.Rule.Callback.(Named)
		if !ok {
			continue
		}
		if reg == nil {
			return nil, fmt.Errorf("field %q: callback %q: no registry", fr.Field, string(name))
		}
		cb, found := reg.Lookup(string(name))
		if !found {
			return nil, fmt.Errorf("field %q: unknown callback %q", fr.Field, string(name))
		}
		out[i].Rule.Callback = cb
	}
	return out, nil
}

// Callback names used by the T1250 rule sets.
const (
	CallbackAgentID           = "get_agent_id"
	CallbackTranslatePostcode = "translate_postcode"
	CallbackDateNow           = "date_now"
	CallbackIntOrNone         = "int_or_none"
	CallbackStripMobile       = "strip_mobile"
)

// Fields that are not part of the fixed-width layout.
const (
	FieldBusinessUnit = "bu_id"
	FieldStatus       = "status"
	FieldJobTS        = "job_ts"
	FieldCreatedTS    = "created_ts"
)

// JobRules maps a T1250 record onto the jobs table.
func JobRules() RuleSet {
	return RuleSet{
		{record.FieldAgentID, Rule{Column: "agent_id", Required: true, Callback: Named(CallbackAgentID)}},
		{record.FieldBarcode, Rule{Column: "card_ref_nbr", Required: true}},
		{record.FieldServiceCode, Rule{Column: "service_code", Callback: Named(CallbackIntOrNone)}},
		{record.FieldAddress1, Rule{Column: "address_1"}},
		{record.FieldAddress2, Rule{Column: "address_2"}},
		{record.FieldSuburb, Rule{Column: "suburb"}},
		{record.FieldPostcode, Rule{Column: "postcode"}},
		{record.FieldState, Rule{Column: "state", Callback: Named(CallbackTranslatePostcode)}},
		{FieldBusinessUnit, Rule{Column: "bu_id", Required: true}},
		{FieldStatus, Rule{Column: "status", Default: model.StatusActive}},
		{FieldJobTS, Rule{Column: "job_ts", Callback: Named(CallbackDateNow)}},
	}
}

// JobItemRules maps a T1250 record onto the job_items table.
func JobItemRules() RuleSet {
	return RuleSet{
		{record.FieldConnote, Rule{Column: "connote_nbr", Required: true}},
		{record.FieldItemNumber, Rule{Column: "item_nbr", Required: true, DefaultEqual: record.FieldBarcode}},
		{record.FieldConsumerName, Rule{Column: "consumer_name"}},
		{record.FieldEmail, Rule{Column: "email_addr"}},
		{record.FieldMobile, Rule{Column: "phone_nbr", Callback: Named(CallbackStripMobile)}},
		{record.FieldPieces, Rule{Column: "pieces", Callback: Named(CallbackIntOrNone)}},
		{FieldStatus, Rule{Column: "status", Default: model.StatusActive}},
		{FieldCreatedTS, Rule{Column: "created_ts", Callback: Named(CallbackDateNow)}},
	}
}
