package model

import (
	"fmt"
	"strings"
)

// ConditionMap holds the per-business-unit processing flags. It is built once
// per business unit when configuration is loaded and is read-only afterwards.
type ConditionMap struct {
	ItemNumberExcp   bool `json:"item_number_excp"    yaml:"item_number_excp"`
	SendEmail        bool `json:"send_email"          yaml:"send_email"`
	SendSMS          bool `json:"send_sms"            yaml:"send_sms"`
	SendPSFile       bool `json:"send_ps_file"        yaml:"send_ps_file"`
	SendPNGFile      bool `json:"send_png_file"       yaml:"send_png_file"`
	StateReporting   bool `json:"state_reporting"     yaml:"state_reporting"`
	PEPods           bool `json:"pe_pods"             yaml:"pe_pods"`
	AggregateFiles   bool `json:"aggregate_files"     yaml:"aggregate_files"`
	SendSC1          bool `json:"send_sc_1"           yaml:"send_sc_1"`
	SendSC2          bool `json:"send_sc_2"           yaml:"send_sc_2"`
	SendSC4          bool `json:"send_sc_4"           yaml:"send_sc_4"`
	DelayTemplateSC4 bool `json:"delay_template_sc_4" yaml:"delay_template_sc_4"`
	IgnoreSC4        bool `json:"ignore_sc_4"         yaml:"ignore_sc_4"`
	PEComms          bool `json:"pe_comms"            yaml:"pe_comms"`
	OnDelSC4         bool `json:"on_del_sc_4"         yaml:"on_del_sc_4"`
	ArchivePSFile    bool `json:"archive_ps_file"     yaml:"archive_ps_file"`
	ArchivePNGFile   bool `json:"archive_png_file"    yaml:"archive_png_file"`
	DelayTemplateSC2 bool `json:"delay_template_sc_2" yaml:"delay_template_sc_2"`
}

type conditionFlag struct {
	name string
	ptr  func(*ConditionMap) *bool
}

// conditionFlags lists every known flag in legacy positional order.
var conditionFlags = []conditionFlag{
	{"item_number_excp", func(c *ConditionMap) *bool { return &c.ItemNumberExcp }},
	{"send_email", func(c *ConditionMap) *bool { return &c.SendEmail }},
	{"send_sms", func(c *ConditionMap) *bool { return &c.SendSMS }},
	{"send_ps_file", func(c *ConditionMap) *bool { return &c.SendPSFile }},
	{"send_png_file", func(c *ConditionMap) *bool { return &c.SendPNGFile }},
	{"state_reporting", func(c *ConditionMap) *bool { return &c.StateReporting }},
	{"pe_pods", func(c *ConditionMap) *bool { return &c.PEPods }},
	{"aggregate_files", func(c *ConditionMap) *bool { return &c.AggregateFiles }},
	{"send_sc_1", func(c *ConditionMap) *bool { return &c.SendSC1 }},
	{"send_sc_2", func(c *ConditionMap) *bool { return &c.SendSC2 }},
	{"send_sc_4", func(c *ConditionMap) *bool { return &c.SendSC4 }},
	{"delay_template_sc_4", func(c *ConditionMap) *bool { return &c.DelayTemplateSC4 }},
	{"ignore_sc_4", func(c *ConditionMap) *bool { return &c.IgnoreSC4 }},
	{"pe_comms", func(c *ConditionMap) *bool { return &c.PEComms }},
	{"on_del_sc_4", func(c *ConditionMap) *bool { return &c.OnDelSC4 }},
	{"archive_ps_file", func(c *ConditionMap) *bool { return &c.ArchivePSFile }},
	{"archive_png_file", func(c *ConditionMap) *bool { return &c.ArchivePNGFile }},
	{"delay_template_sc_2", func(c *ConditionMap) *bool { return &c.DelayTemplateSC2 }},
}

// ConditionFlagNames returns the closed set of known flag names in legacy positional order.
func ConditionFlagNames() []string {
	names := make([]string, len(conditionFlags))
	for i, f := range conditionFlags {
		names[i] = f.name
	}
	return names
}

// ParseConditionFlags builds a ConditionMap with the named flags switched on.
func ParseConditionFlags(names []string) (ConditionMap, error) {
	var c ConditionMap
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		ptr, ok := c.lookup(name)
		if !ok {
			return ConditionMap{}, fmt.Errorf("unknown condition flag %q", raw)
		}
		*ptr = true
	}
	return c, nil
}

// ParseLegacyConditionString decodes the positional "0"/"1" condition string used by
// older configuration files. Missing trailing positions are false.
func ParseLegacyConditionString(s string) (ConditionMap, error) {
	var c ConditionMap
	s = strings.TrimSpace(s)
	if len(s) > len(conditionFlags) {
		return ConditionMap{}, fmt.Errorf(
			"condition string has %d positions, at most %d are defined", len(s), len(conditionFlags))
	}
	for i, ch := range s {
		switch ch {
		case '0':
		case '1':
			*conditionFlags[i].ptr(&c) = true
		default:
			return ConditionMap{}, fmt.Errorf("condition string position %d: invalid value %q", i, ch)
		}
	}
	return c, nil
}

// Flag returns the value of the named flag and whether the name is known.
func (c ConditionMap) Flag(name string) (bool, bool) {
	ptr, ok := c.lookup(name)
	if !ok {
		return false, false
	}
	return *ptr, true
}

// Enabled returns the names of all flags that are switched on.
func (c ConditionMap) Enabled() []string {
	var out []string
	for _, f := range conditionFlags {
		if *f.ptr(&c) {
			out = append(out, f.name)
		}
	}
	return out
}

func (c *ConditionMap) lookup(name string) (*bool, bool) {
	for _, f := range conditionFlags {
		if f.name == name {
			return f.ptr(c), true
		}
	}
	return nil, false
}

// BusinessUnit describes a source of T1250 files and its processing conditions.
type BusinessUnit struct {
	ID         int64        `json:"id"         yaml:"id"`
	Name       string       `json:"name"       yaml:"name"`
	Token      string       `json:"token"      yaml:"token"`
	Conditions ConditionMap `json:"conditions" yaml:"-"`
}
