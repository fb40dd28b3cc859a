package mapping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/t1250-loader/internal/domain/model"
	"github.com/target/t1250-loader/internal/domain/record"
)

func identity() Callback {
	return Func(func(_ context.Context, v any) (any, error) { return v, nil })
}

func fullRegistry() RegistryMap {
	return RegistryMap{
		CallbackAgentID:           identity(),
		CallbackTranslatePostcode: identity(),
		CallbackDateNow:           identity(),
		CallbackIntOrNone:         identity(),
		CallbackStripMobile:       identity(),
	}
}

func TestBuiltinRuleSetsAreValid(t *testing.T) {
	require.NoError(t, JobRules().Validate())
	require.NoError(t, JobItemRules().Validate())
}

func TestRuleSet_Validate(t *testing.T) {
	assert.Error(t, RuleSet{{"a", Rule{Column: "x"}}, {"a", Rule{Column: "y"}}}.Validate())
	assert.Error(t, RuleSet{{"a", Rule{Column: "x"}}, {"b", Rule{Column: "x"}}}.Validate())
	assert.Error(t, RuleSet{{"a", Rule{}}}.Validate())
	assert.Error(t, RuleSet{{"a", Rule{Column: "x", DefaultEqual: "a"}}}.Validate())
}

func TestRuleSet_Resolve(t *testing.T) {
	rules := JobItemRules()

	resolved, err := rules.Resolve(fullRegistry())
	require.NoError(t, err)
	for _, fr := range resolved {
		_, stillNamed := fr.Rule.Callback.(Named)
		assert.False(t, stillNamed, fr.Field)
	}

	rule, ok := rules.Rule(record.FieldMobile)
	require.True(t, ok)
	assert.Equal(t, Named(CallbackStripMobile), rule.Callback, "Resolve must not modify the receiver")

	_, err = rules.Resolve(RegistryMap{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), CallbackStripMobile)

	_, err = rules.Resolve(nil)
	require.Error(t, err)
}

func TestNamed_ApplyUnresolved(t *testing.T) {
	_, err := Named("date_now").Apply(context.Background(), nil)
	require.ErrorIs(t, err, ErrUnresolvedCallback)
}

func TestJobItemRules_ItemNumberDefaultsToBarcode(t *testing.T) {
	rules, err := JobItemRules().Resolve(fullRegistry())
	require.NoError(t, err)

	raw := FromFields(record.Fields{
		record.FieldConnote: "218501217863",
		record.FieldBarcode: "4156536111",
	})

	cols, err := MapFields(context.Background(), raw, rules, model.ConditionMap{})
	require.NoError(t, err)
	assert.Equal(t, "218501217863", cols["connote_nbr"])
	assert.Equal(t, "4156536111", cols["item_nbr"])
	assert.Equal(t, model.StatusActive, cols["status"])
	assert.ElementsMatch(t, rules.Columns(), keys(cols))

	_, err = MapFields(context.Background(), raw, rules, model.ConditionMap{ItemNumberExcp: true})
	me, ok := AsMappingError(err)
	require.True(t, ok)
	assert.Equal(t, record.FieldItemNumber, me.Field)
}

func TestJobRules_RequireBusinessUnitAndAgent(t *testing.T) {
	rules, err := JobRules().Resolve(fullRegistry())
	require.NoError(t, err)

	raw := FromFields(record.Fields{record.FieldBarcode: "4156536111", record.FieldAgentID: "N031"})
	_, err = MapFields(context.Background(), raw, rules, model.ConditionMap{})
	me, ok := AsMappingError(err)
	require.True(t, ok)
	assert.Equal(t, FieldBusinessUnit, me.Field)

	cols, err := MapFields(context.Background(), raw.With(FieldBusinessUnit, int64(2)), rules, model.ConditionMap{})
	require.NoError(t, err)
	assert.Equal(t, "N031", cols["agent_id"])
	assert.Equal(t, int64(2), cols["bu_id"])

	_, err = MapFields(context.Background(), raw.With(record.FieldAgentID, "").With(FieldBusinessUnit, int64(2)), rules, model.ConditionMap{})
	me, ok = AsMappingError(err)
	require.True(t, ok)
	assert.Equal(t, record.FieldAgentID, me.Field)
}

func keys(c model.Columns) []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	return out
}
