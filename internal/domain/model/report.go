package model

import "time"

// RecordAlert describes a record that was skipped while loading a file.
type RecordAlert struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Connote string `json:"connote,omitempty"`
	Barcode string `json:"barcode,omitempty"`
	Message string `json:"message"`
}

// LoadReport summarises one processed T1250 file.
type LoadReport struct {
	LoadID          string        `json:"load_id"`
	File            string        `json:"file"`
	BusinessUnit    string        `json:"business_unit"`
	Records         int           `json:"records"`
	Processed       int           `json:"processed"`
	Skipped         int           `json:"skipped"`
	JobsCreated     int           `json:"jobs_created"`
	JobItemsCreated int           `json:"job_items_created"`
	CommsEvents     []CommsEvent  `json:"comms_events,omitempty"`
	Alerts          []RecordAlert `json:"alerts,omitempty"`
	DryRun          bool          `json:"dry_run"`
	Committed       bool          `json:"committed"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration"`
}

// HasAlerts reports whether any record was skipped.
func (r *LoadReport) HasAlerts() bool {
	return r != nil && len(r.Alerts) > 0
}

// AddAlert appends a record alert and counts the record as skipped.
func (r *LoadReport) AddAlert(a RecordAlert) {
	r.Alerts = append(r.Alerts, a)
	r.Skipped++
}
