// Package comms decides which delivery notifications a record triggers.
package comms

import "github.com/target/t1250-loader/internal/domain/model"

// Service codes carried in the T1250 Service Code field.
const (
	ServiceCodeStandard     = 1
	ServiceCodeDelay        = 2
	ServiceCodePrimaryElect = 3
	ServiceCodeSignature    = 4
)

// NotifyRules are the inputs of ShouldNotify for one channel.
type NotifyRules struct {
	ChannelEnabled bool
	SendSC1        bool
	SendSC2        bool
	SendSC4        bool
	IgnoreSC4      bool
}

// RulesFor derives the notify rules of channel from a business unit's conditions.
func RulesFor(channel model.Channel, cond model.ConditionMap) NotifyRules {
	enabled := false
	switch channel {
	case model.ChannelEmail:
		enabled = cond.SendEmail
	case model.ChannelSMS:
		enabled = cond.SendSMS
	}
	return NotifyRules{
		ChannelEnabled: enabled,
		SendSC1:        cond.SendSC1,
		SendSC2:        cond.SendSC2,
		SendSC4:        cond.SendSC4,
		IgnoreSC4:      cond.IgnoreSC4,
	}
}

// ShouldNotify reports whether a notification fires on a channel.
//
// Primary Elect (code 3) never notifies here. When any send_sc_* flag is set
// only the flagged codes notify; otherwise every remaining code does.
func ShouldNotify(serviceCode *int, r NotifyRules) bool {
	if !r.ChannelEnabled {
		return false
	}
	if is(serviceCode, ServiceCodePrimaryElect) {
		return false
	}
	if is(serviceCode, ServiceCodeSignature) && r.IgnoreSC4 {
		return false
	}
	if !r.SendSC1 && !r.SendSC2 && !r.SendSC4 {
		return true
	}
	return (is(serviceCode, ServiceCodeStandard) && r.SendSC1) ||
		(is(serviceCode, ServiceCodeDelay) && r.SendSC2) ||
		(is(serviceCode, ServiceCodeSignature) && r.SendSC4)
}

// SelectTemplate picks the delay template for delayed service codes.
func SelectTemplate(serviceCode *int, delaySC2, delaySC4 bool) model.Template {
	if (is(serviceCode, ServiceCodeDelay) && delaySC2) || (is(serviceCode, ServiceCodeSignature) && delaySC4) {
		return model.TemplateDelay
	}
	return model.TemplateBody
}

// Recipients holds the contact details of a job item.
type Recipients struct {
	Email  string
	Mobile string
}

func (r Recipients) forChannel(c model.Channel) string {
	if c == model.ChannelSMS {
		return r.Mobile
	}
	return r.Email
}

// Channels lists the channels in decision order.
var Channels = []model.Channel{model.ChannelEmail, model.ChannelSMS}

// Decide returns the comms events for one job item. A channel fires only when
// ShouldNotify allows it and the item has a recipient on that channel.
func Decide(jobItemID int64, serviceCode *int, cond model.ConditionMap, to Recipients) []model.CommsEvent {
	template := SelectTemplate(serviceCode, cond.DelayTemplateSC2, cond.DelayTemplateSC4)
	var events []model.CommsEvent
	for _, ch := range Channels {
		if to.forChannel(ch) == "" || !ShouldNotify(serviceCode, RulesFor(ch, cond)) {
			continue
		}
		events = append(events, model.CommsEvent{Channel: ch, JobItemID: jobItemID, Template: template})
	}
	return events
}

func is(code *int, want int) bool {
	return code != nil && *code == want
}
