package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommsEvent_Name(t *testing.T) {
	ev := CommsEvent{Channel: ChannelSMS, JobItemID: 42, Template: TemplateDelay}
	assert.Equal(t, "sms.42.delay", ev.Name())

	parsed, err := ParseCommsEventName("sms.42.delay")
	require.NoError(t, err)
	assert.Equal(t, ev, parsed)
}

func TestParseCommsEventName_Invalid(t *testing.T) {
	for _, name := range []string{"", "email.1", "fax.1.body", "email.x.body", "email.1.long", "email.0.body"} {
		_, err := ParseCommsEventName(name)
		assert.Error(t, err, name)
	}
}

func TestLoadReport_AddAlert(t *testing.T) {
	var r LoadReport
	assert.False(t, r.HasAlerts())

	r.AddAlert(RecordAlert{Line: 3, Field: "Agent Id", Message: "required"})
	assert.True(t, r.HasAlerts())
	assert.Equal(t, 1, r.Skipped)

	var nilReport *LoadReport
	assert.False(t, nilReport.HasAlerts())
}
