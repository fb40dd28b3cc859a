// Package postcode translates Australian postcodes to state codes.
package postcode

import (
	"strconv"
	"strings"
)

type postcodeRange struct {
	lo, hi int
	state  string
}

// ranges are checked in order; ACT carve-outs precede the NSW blocks that contain them.
var ranges = []postcodeRange{
	{200, 299, "ACT"},
	{2600, 2619, "ACT"},
	{2900, 2920, "ACT"},
	{800, 999, "NT"},
	{1000, 2599, "NSW"},
	{2620, 2899, "NSW"},
	{2921, 2999, "NSW"},
	{3000, 3999, "VIC"},
	{8000, 8999, "VIC"},
	{4000, 4999, "QLD"},
	{9000, 9999, "QLD"},
	{5000, 5999, "SA"},
	{6000, 6999, "WA"},
	{7000, 7999, "TAS"},
}

// State returns the state code for a postcode, or "" when the postcode is not
// a known Australian postcode.
func State(postcode string) string {
	pc := strings.TrimSpace(postcode)
	if pc == "" || len(pc) > 4 {
		return ""
	}
	n, err := strconv.Atoi(pc)
	if err != nil || n < 0 {
		return ""
	}
	for _, r := range ranges {
		if n >= r.lo && n <= r.hi {
			return r.state
		}
	}
	return ""
}
