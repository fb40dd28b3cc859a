package postcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	tests := map[string]string{
		"2000":  "NSW",
		"2600":  "ACT",
		"2619":  "ACT",
		"2620":  "NSW",
		"2913":  "ACT",
		"2999":  "NSW",
		"0200":  "ACT",
		"0800":  "NT",
		"0870":  "NT",
		"3000":  "VIC",
		"8001":  "VIC",
		"4000":  "QLD",
		"9726":  "QLD",
		"5000":  "SA",
		"6000":  "WA",
		"7000":  "TAS",
		" 3121": "VIC",
		"":      "",
		"0100":  "",
		"ABCD":  "",
		"20000": "",
		"-200":  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, State(in), "postcode %q", in)
	}
}
