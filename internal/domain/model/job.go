// Package model defines the core data types and structures used throughout the T1250 loader.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Job and job item status values written by the loader.
const (
	// StatusActive is the default status of a freshly loaded job or job item.
	StatusActive = 1
)

var (
	// ErrColumnMissing is returned by typed column accessors when the column is absent or empty.
	ErrColumnMissing = errors.New("column missing")
	// ErrAgentNotFound is returned when no agent has the requested code.
	ErrAgentNotFound = errors.New("agent not found")
)

// Job represents a parcel at a delivery agent, keyed by its barcode (card_ref_nbr).
// AgentID is the only column the loader changes after creation.
type Job struct {
	ID          int64     `json:"id"                     db:"id"`
	AgentID     int64     `json:"agent_id"               db:"agent_id"`
	BUID        int64     `json:"bu_id"                  db:"bu_id"`
	CardRefNbr  string    `json:"card_ref_nbr"           db:"card_ref_nbr"`
	ServiceCode *int      `json:"service_code,omitempty" db:"service_code"`
	State       string    `json:"state"                  db:"state"`
	Postcode    string    `json:"postcode"               db:"postcode"`
	Address1    string    `json:"address_1"              db:"address_1"`
	Address2    string    `json:"address_2"              db:"address_2"`
	Suburb      string    `json:"suburb"                 db:"suburb"`
	Status      int       `json:"status"                 db:"status"`
	JobTS       time.Time `json:"job_ts"                 db:"job_ts"`
}

// JobItem represents one consignment line (connote + item number) under a Job.
// PickupTS and NotifyTS are owned by other subsystems.
type JobItem struct {
	ID           int64      `json:"id"                  db:"id"`
	JobID        int64      `json:"job_id"              db:"job_id"`
	ConnoteNbr   string     `json:"connote_nbr"         db:"connote_nbr"`
	ItemNbr      string     `json:"item_nbr"            db:"item_nbr"`
	ConsumerName string     `json:"consumer_name"       db:"consumer_name"`
	EmailAddr    string     `json:"email_addr"          db:"email_addr"`
	PhoneNbr     string     `json:"phone_nbr"           db:"phone_nbr"`
	Pieces       *int       `json:"pieces,omitempty"    db:"pieces"`
	Status       int        `json:"status"              db:"status"`
	CreatedTS    time.Time  `json:"created_ts"          db:"created_ts"`
	PickupTS     *time.Time `json:"pickup_ts,omitempty" db:"pickup_ts"`
	NotifyTS     *time.Time `json:"notify_ts,omitempty" db:"notify_ts"`
}

// Agent is a delivery partner that holds parcels for collection.
type Agent struct {
	ID   int64  `json:"id"   db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// CreateAgentRequest represents a request to register a delivery agent.
type CreateAgentRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Normalize trims the request fields.
func (r *CreateAgentRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
}

// Validate validates the CreateAgentRequest fields.
func (r *CreateAgentRequest) Validate() error {
	if r.Code == "" {
		return errors.New("code is required")
	}
	return nil
}

// Columns is a column-name to value dictionary produced by the field mapping engine.
type Columns map[string]any

// Clone returns a shallow copy of the columns.
func (c Columns) Clone() Columns {
	out := make(Columns, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// With returns a copy of the columns with key set to value.
func (c Columns) With(key string, value any) Columns {
	out := c.Clone()
	out[key] = value
	return out
}

// String returns the column value rendered as a string; nil renders as "".
func (c Columns) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Int64 returns the column value as an int64.
func (c Columns) Int64(key string) (int64, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s: %w", key, ErrColumnMissing)
	}
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, fmt.Errorf("%s: %w", key, ErrColumnMissing)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: unsupported type %T", key, v)
	}
}

// IntPtr returns the column value as an optional int. Missing, empty, or non-numeric values yield nil.
func (c Columns) IntPtr(key string) *int {
	n, err := c.Int64(key)
	if err != nil {
		return nil
	}
	i := int(n)
	return &i
}

// ReconciliationResult is the outcome of matching a record's barcode against stored entities.
// A nil JobID means a new Job must be created. JobItemID is set only when the
// manufactured-barcode path found the existing JobItem (SkipItemCheck is then true).
type ReconciliationResult struct {
	JobID         *int64 `json:"job_id,omitempty"`
	JobItemID     *int64 `json:"job_item_id,omitempty"`
	SkipItemCheck bool   `json:"skip_item_check"`
}

// IsNew reports whether the record needs a new Job.
func (r ReconciliationResult) IsNew() bool {
	return r.JobID == nil
}
