package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/domain/mapping"
	"github.com/target/t1250-loader/internal/domain/postcode"
)

// agentResolver is the part of AgentLookupService used by the get_agent_id callback.
type agentResolver interface {
	AgentID(ctx context.Context, code string) (int64, bool, error)
}

// CallbackRegistryOptions groups dependencies for NewCallbackRegistry.
type CallbackRegistryOptions struct {
	Agents agentResolver // Required
	Clock  core.Clock    // Required
}

// NewCallbackRegistry returns the named mapping callbacks used by the T1250 rule sets.
func NewCallbackRegistry(opts CallbackRegistryOptions) mapping.RegistryMap {
	if opts.Agents == nil {
		panic("NewCallbackRegistry: Agents is required")
	}
	if opts.Clock == nil {
		panic("NewCallbackRegistry: Clock is required")
	}
	return mapping.RegistryMap{
		mapping.CallbackAgentID:           agentIDCallback(opts.Agents),
		mapping.CallbackTranslatePostcode: mapping.Func(translatePostcode),
		mapping.CallbackDateNow:           dateNowCallback(opts.Clock),
		mapping.CallbackIntOrNone:         mapping.Func(intOrNone),
		mapping.CallbackStripMobile:       mapping.Func(stripMobile),
	}
}

// agentIDCallback maps an agent code to its id. Unknown codes map to "" so the
// required check reports the record.
func agentIDCallback(agents agentResolver) mapping.Callback {
	return mapping.Func(func(ctx context.Context, v any) (any, error) {
		code := asString(v)
		if code == "" {
			return "", nil
		}
		id, ok, err := agents.AgentID(ctx, code)
		if err != nil {
			return nil, err
		}
		if !ok {
			return "", nil
		}
		return id, nil
	})
}

func dateNowCallback(clock core.Clock) mapping.Callback {
	return mapping.Func(func(context.Context, any) (any, error) {
		return clock.Now().UTC(), nil
	})
}

func translatePostcode(_ context.Context, v any) (any, error) {
	return postcode.State(asString(v)), nil
}

// intOrNone parses a numeric field. Anything that is not an integer becomes nil.
func intOrNone(_ context.Context, v any) (any, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	}
	s := asString(v)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, nil
	}
	return n, nil
}

func stripMobile(_ context.Context, v any) (any, error) {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, asString(v)), nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
