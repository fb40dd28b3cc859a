// Package record extracts named fields from fixed-width T1250 lines.
package record

import (
	"strings"
	"unicode"
)

// EOF is the literal line that terminates a T1250 file.
const EOF = "%%EOF"

// Raw field names of the T1250 layout.
const (
	FieldConnote      = "Conn Note"
	FieldIdentifier   = "Identifier"
	FieldConsumerName = "Consumer Name"
	FieldAddress1     = "Consumer Address 1"
	FieldAddress2     = "Consumer Address 2"
	FieldSuburb       = "Suburb"
	FieldPostcode     = "Post code"
	FieldState        = "state"
	FieldBarcode      = "Bar code"
	FieldAgentID      = "Agent Id"
	FieldPieces       = "Pieces"
	FieldEmail        = "Email Address"
	FieldMobile       = "Mobile Number"
	FieldServiceCode  = "Service Code"
	FieldItemNumber   = "Item Number"
)

// FieldSpec locates one field inside a line. Offset and Length count characters.
type FieldSpec struct {
	Offset int
	Length int
}

// Field binds a name to its location.
type Field struct {
	Name string
	Spec FieldSpec
}

// Layout is an ordered set of fields. Two names may share a window.
type Layout []Field

// Names returns the field names in layout order.
func (l Layout) Names() []string {
	out := make([]string, len(l))
	for i, f := range l {
		out[i] = f.Name
	}
	return out
}

// Lookup returns the spec of the named field.
func (l Layout) Lookup(name string) (FieldSpec, bool) {
	for _, f := range l {
		if f.Name == name {
			return f.Spec, true
		}
	}
	return FieldSpec{}, false
}

// T1250Layout is the record layout of T1250 consignment files.
var T1250Layout = Layout{
	{FieldConnote, FieldSpec{0, 20}},
	{FieldIdentifier, FieldSpec{22, 19}},
	{FieldConsumerName, FieldSpec{41, 30}},
	{FieldAddress1, FieldSpec{81, 30}},
	{FieldAddress2, FieldSpec{111, 30}},
	{FieldSuburb, FieldSpec{141, 30}},
	{FieldPostcode, FieldSpec{171, 6}},
	{FieldState, FieldSpec{171, 6}},
	{FieldBarcode, FieldSpec{438, 15}},
	{FieldAgentID, FieldSpec{453, 4}},
	{FieldPieces, FieldSpec{588, 5}},
	{FieldEmail, FieldSpec{765, 60}},
	{FieldMobile, FieldSpec{825, 10}},
	{FieldServiceCode, FieldSpec{842, 1}},
	{FieldItemNumber, FieldSpec{887, 32}},
}

// Fields is the name to raw value result of Parse.
type Fields map[string]string

// Parse slices every field of layout out of line and right-trims the padding.
// A field whose window does not fit entirely inside the line is empty.
func Parse(line string, layout Layout) Fields {
	runes := []rune(line)
	out := make(Fields, len(layout))
	for _, f := range layout {
		out[f.Name] = slice(runes, f.Spec)
	}
	return out
}

// IsEOF reports whether line is the end-of-file terminator.
func IsEOF(line string) bool {
	return strings.TrimRightFunc(line, unicode.IsSpace) == EOF
}

// Format renders fields into a fixed-width line, padding with spaces. Values
// longer than their window are truncated. It is the inverse of Parse for
// values without trailing whitespace.
func Format(fields Fields, layout Layout) string {
	width := 0
	for _, f := range layout {
		if end := f.Spec.Offset + f.Spec.Length; end > width {
			width = end
		}
	}
	line := []rune(strings.Repeat(" ", width))
	for _, f := range layout {
		v, ok := fields[f.Name]
		if !ok || f.Spec.Offset < 0 {
			continue
		}
		val := []rune(v)
		if len(val) > f.Spec.Length {
			val = val[:f.Spec.Length]
		}
		copy(line[f.Spec.Offset:], val)
	}
	return string(line)
}

func slice(runes []rune, spec FieldSpec) string {
	end := spec.Offset + spec.Length
	if spec.Offset < 0 || spec.Length <= 0 || end > len(runes) {
		return ""
	}
	return strings.TrimRightFunc(string(runes[spec.Offset:end]), unicode.IsSpace)
}
