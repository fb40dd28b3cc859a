package mapping

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/t1250-loader/internal/domain/model"
)

func upper() Callback {
	return Func(func(_ context.Context, v any) (any, error) {
		s, _ := v.(string)
		return strings.ToUpper(s), nil
	})
}

func TestMapFields_AllRequiredResolvable(t *testing.T) {
	rules := RuleSet{
		{"a", Rule{Column: "col_a", Required: true}},
		{"b", Rule{Column: "col_b", Required: true, Default: "dflt"}},
		{"c", Rule{Column: "col_c", Required: true, DefaultEqual: "a"}},
		{"d", Rule{Column: "col_d", Required: true, Callback: upper()}},
		{"e", Rule{Column: "col_e"}},
	}

	cols, err := MapFields(context.Background(), Values{"a": "x", "b": "", "d": "low"}, rules, model.ConditionMap{})
	require.NoError(t, err)
	assert.Equal(t, model.Columns{
		"col_a": "x",
		"col_b": "dflt",
		"col_c": "x",
		"col_d": "LOW",
		"col_e": nil,
	}, cols)
}

func TestMapFields_RequiredWithoutFallbackFails(t *testing.T) {
	rules := RuleSet{
		{"ok", Rule{Column: "ok", Required: true, Default: 1}},
		{"Consignee", Rule{Column: "consignee", Required: true}},
	}

	_, err := MapFields(context.Background(), Values{"Consignee": ""}, rules, model.ConditionMap{})
	require.Error(t, err)

	me, ok := AsMappingError(err)
	require.True(t, ok)
	assert.Equal(t, "Consignee", me.Field)
}

func TestMapFields_DefaultEqualSeesDefaultedSource(t *testing.T) {
	rules := RuleSet{
		{"target", Rule{Column: "target", Required: true, DefaultEqual: "source"}},
		{"source", Rule{Column: "source", Default: "from-default"}},
	}

	cols, err := MapFields(context.Background(), Values{}, rules, model.ConditionMap{})
	require.NoError(t, err)
	assert.Equal(t, "from-default", cols["target"])
}

func TestMapFields_ItemNumberExemption(t *testing.T) {
	rules := RuleSet{
		{"Other", Rule{Column: "other", Required: true, DefaultEqual: "Bar code"}},
		{ItemNumberField, Rule{Column: "item_nbr", Required: true, DefaultEqual: "Bar code"}},
	}
	raw := Values{"Bar code": "4156536111", ItemNumberField: ""}

	cols, err := MapFields(context.Background(), raw, rules, model.ConditionMap{})
	require.NoError(t, err)
	assert.Equal(t, "4156536111", cols["item_nbr"])

	exempt := ApplyDefaultEquals(raw, rules, model.ConditionMap{ItemNumberExcp: true})
	assert.Equal(t, "4156536111", exempt["Other"], "unrelated default-equals still apply")
	assert.Equal(t, "", exempt[ItemNumberField])

	_, err = MapFields(context.Background(), raw, rules, model.ConditionMap{ItemNumberExcp: true})
	me, ok := AsMappingError(err)
	require.True(t, ok)
	assert.Equal(t, ItemNumberField, me.Field)
}

func TestPhases_DoNotMutateInput(t *testing.T) {
	rules := RuleSet{
		{"a", Rule{Column: "a", Callback: upper()}},
		{"b", Rule{Column: "b", Default: "d"}},
		{"c", Rule{Column: "c", DefaultEqual: "a"}},
	}
	in := Values{"a": "v"}

	afterCB, err := ApplyCallbacks(context.Background(), in, rules)
	require.NoError(t, err)
	afterDefault := ApplyDefaults(afterCB, rules)
	afterEqual := ApplyDefaultEquals(afterDefault, rules, model.ConditionMap{})

	assert.Equal(t, Values{"a": "v"}, in)
	assert.Equal(t, "V", afterCB["a"])
	assert.NotContains(t, afterCB, "b")
	assert.NotContains(t, afterCB, "c")
	assert.Equal(t, "d", afterDefault["b"])
	assert.NotContains(t, afterDefault, "c")
	assert.Equal(t, "V", afterEqual["c"])
}

func TestApplyCallbacks_ReceivesNilForMissingField(t *testing.T) {
	var got any = "unset"
	rules := RuleSet{{"ts", Rule{Column: "ts", Callback: Func(func(_ context.Context, v any) (any, error) {
		got = v
		return "now", nil
	})}}}

	out, err := ApplyCallbacks(context.Background(), Values{}, rules)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "now", out["ts"])
}

func TestApplyCallbacks_Errors(t *testing.T) {
	boom := errors.New("db down")
	rules := RuleSet{{"Agent Id", Rule{Column: "agent_id", Callback: Func(func(context.Context, any) (any, error) {
		return nil, boom
	})}}}
	_, err := ApplyCallbacks(context.Background(), Values{"Agent Id": "N031"}, rules)
	require.ErrorIs(t, err, boom)
	_, isMapping := AsMappingError(err)
	assert.False(t, isMapping)

	rules = RuleSet{{"Pieces", Rule{Column: "pieces", Callback: Func(func(context.Context, any) (any, error) {
		return nil, NewMappingError("", "not a number")
	})}}}
	_, err = ApplyCallbacks(context.Background(), Values{"Pieces": "x"}, rules)
	me, ok := AsMappingError(err)
	require.True(t, ok)
	assert.Equal(t, "Pieces", me.Field)
	assert.Contains(t, me.Error(), "not a number")
}

func TestApplyDefaults_KeepsNonEmptyValues(t *testing.T) {
	rules := RuleSet{{"status", Rule{Column: "status", Default: 1}}}
	out := ApplyDefaults(Values{"status": 0}, rules)
	assert.Equal(t, 0, out["status"])
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.False(t, IsEmpty(" "))
	assert.False(t, IsEmpty(0))
	assert.False(t, IsEmpty(int64(5)))
}

func TestValuesWith(t *testing.T) {
	base := Values{"a": 1}
	next := base.With("bu_id", int64(3))
	assert.NotContains(t, base, "bu_id")
	assert.Equal(t, int64(3), next["bu_id"])
}
