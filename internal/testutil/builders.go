package testutil

import "github.com/target/t1250-loader/internal/domain/record"

// RecordBuilder provides a fluent interface for building T1250 lines for testing.
type RecordBuilder struct {
	fields record.Fields
}

// NewRecord creates a RecordBuilder with a valid Sydney consignment.
func NewRecord() *RecordBuilder {
	return &RecordBuilder{fields: record.Fields{
		record.FieldConnote:      "218501217863",
		record.FieldIdentifier:   "IDENT0000001",
		record.FieldConsumerName: "JANE CITIZEN",
		record.FieldAddress1:     "1 GEORGE ST",
		record.FieldSuburb:       "SYDNEY",
		record.FieldPostcode:     "2000",
		record.FieldBarcode:      "4156536111",
		record.FieldAgentID:      "N031",
		record.FieldPieces:       "1",
		record.FieldServiceCode:  "1",
	}}
}

// With sets a raw field.
func (b *RecordBuilder) With(field, value string) *RecordBuilder {
	b.fields[field] = value
	return b
}

// WithConnote sets the Conn Note field.
func (b *RecordBuilder) WithConnote(v string) *RecordBuilder { return b.With(record.FieldConnote, v) }

// WithBarcode sets the Bar code field.
func (b *RecordBuilder) WithBarcode(v string) *RecordBuilder { return b.With(record.FieldBarcode, v) }

// WithAgent sets the Agent Id field.
func (b *RecordBuilder) WithAgent(v string) *RecordBuilder { return b.With(record.FieldAgentID, v) }

// WithItemNumber sets the Item Number field.
func (b *RecordBuilder) WithItemNumber(v string) *RecordBuilder {
	return b.With(record.FieldItemNumber, v)
}

// WithEmail sets the Email Address field.
func (b *RecordBuilder) WithEmail(v string) *RecordBuilder { return b.With(record.FieldEmail, v) }

// WithMobile sets the Mobile Number field.
func (b *RecordBuilder) WithMobile(v string) *RecordBuilder { return b.With(record.FieldMobile, v) }

// WithServiceCode sets the Service Code field.
func (b *RecordBuilder) WithServiceCode(v string) *RecordBuilder {
	return b.With(record.FieldServiceCode, v)
}

// Line renders the fixed-width line.
func (b *RecordBuilder) Line() string {
	return record.Format(b.fields, record.T1250Layout)
}

// File joins lines and appends the %%EOF terminator.
func File(lines ...string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out + record.EOF + "\n"
}
