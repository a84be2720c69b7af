// Package events defines the wire payloads exchanged with collaborating
// services.
package events

import "time"

// RecordedSample is one point of an uploaded activity: elapsed seconds and
// instantaneous speed in m/s.
type RecordedSample struct {
	OffsetS float64 `json:"offset_s"`
	SpeedMS float64 `json:"speed_ms"`
}

// ActivityRecorded is emitted by the ingestion pipeline once an upload has
// been parsed into a sample series.
type ActivityRecorded struct {
	ActivityID      string            `json:"activity_id"`
	TenantID        string            `json:"tenant_id"`
	UserID          string            `json:"user_id"`
	Discipline      string            `json:"discipline"`
	StartedAt       time.Time         `json:"started_at"`
	MassKG          float64           `json:"mass_kg"`
	SampleIntervalS float64           `json:"sample_interval_s"`
	Tags            map[string]string `json:"tags,omitempty"`
	Samples         []RecordedSample  `json:"samples"`
}

// MetricResult is one computed value inside a MetricsComputed event.
type MetricResult struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Count         float64 `json:"count,omitempty"`
	Precision     int     `json:"precision"`
	Units         string  `json:"units,omitempty"`
	ImperialUnits string  `json:"imperial_units,omitempty"`
}

// MetricsComputed is emitted after an activity's result set is evaluated.
type MetricsComputed struct {
	EventID    string         `json:"event_id"`
	ActivityID string         `json:"activity_id"`
	TenantID   string         `json:"tenant_id"`
	UserID     string         `json:"user_id"`
	Discipline string         `json:"discipline"`
	ComputedAt time.Time      `json:"computed_at"`
	Metrics    []MetricResult `json:"metrics"`
}
