package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Channel identifies a notification channel handled by the external comms daemon.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Valid returns true if the channel is known.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS:
		return true
	default:
		return false
	}
}

// String returns the string representation of the channel.
func (c Channel) String() string {
	return string(c)
}

// Template selects the message body variant used by the comms daemon.
type Template string

const (
	TemplateBody  Template = "body"
	TemplateDelay Template = "delay"
)

// Valid returns true if the template is known.
func (t Template) Valid() bool {
	switch t {
	case TemplateBody, TemplateDelay:
		return true
	default:
		return false
	}
}

// String returns the string representation of the template.
func (t Template) String() string {
	return string(t)
}

// CommsEvent is a pending notification for one job item on one channel.
type CommsEvent struct {
	Channel   Channel  `json:"channel"`
	JobItemID int64    `json:"job_item_id"`
	Template  Template `json:"template"`
}

// Name returns the marker name "<channel>.<job_item_id>.<template>".
func (e CommsEvent) Name() string {
	return string(e.Channel) + "." + strconv.FormatInt(e.JobItemID, 10) + "." + string(e.Template)
}

// Validate checks the event before a marker is written for it.
func (e CommsEvent) Validate() error {
	if !e.Channel.Valid() {
		return fmt.Errorf("invalid channel %q", e.Channel)
	}
	if !e.Template.Valid() {
		return fmt.Errorf("invalid template %q", e.Template)
	}
	if e.JobItemID <= 0 {
		return fmt.Errorf("invalid job item id %d", e.JobItemID)
	}
	return nil
}

// ParseCommsEventName is the inverse of CommsEvent.Name.
func ParseCommsEventName(name string) (CommsEvent, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 {
		return CommsEvent{}, fmt.Errorf("malformed comms marker %q", name)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return CommsEvent{}, fmt.Errorf("malformed comms marker %q: %w", name, err)
	}
	ev := CommsEvent{Channel: Channel(parts[0]), JobItemID: id, Template: Template(parts[2])}
	if err := ev.Validate(); err != nil {
		return CommsEvent{}, err
	}
	return ev, nil
}
