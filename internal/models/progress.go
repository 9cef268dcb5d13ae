package models

import "time"

// ProgressRecord is one client's measurements for one day. Values is sparse:
// a missing metric id means "not measured", which is not the same as zero.
type ProgressRecord struct {
	ID       string             `json:"id"`
	ClientID string             `json:"client_id"`
	Date     time.Time          `json:"date"`
	Values   map[string]float64 `json:"values"`
}

// ChartSeries is a chart-ready line for one metric. Labels and Points always
// have the same length.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Points []float64 `json:"points"`
}

// SeriesResult is either a Series or an insufficient-data marker for one
// template row.
type SeriesResult struct {
	MetricID         string       `json:"metric_id"`
	Name             string       `json:"name"`
	Series           *ChartSeries `json:"series,omitempty"`
	InsufficientData bool         `json:"insufficient_data"`
}

const (
	StatisticsReady      = "ready"
	StatisticsNoTemplate = "no_template"
	StatisticsNoRecords  = "no_records"
)

// ClientStatistics is the statistics view for one client.
type ClientStatistics struct {
	ClientID string         `json:"client_id"`
	State    string         `json:"state"`
	Series   []SeriesResult `json:"series"`
}

// RecordValues is the entry form for one client and day: either the stored
// values or a blank input per template row.
type RecordValues struct {
	RecordID string            `json:"record_id,omitempty"`
	ClientID string            `json:"client_id"`
	Date     time.Time         `json:"date"`
	Inputs   map[string]string `json:"inputs"`
}

// UpsertResult reports how EnterValues persisted a record.
type UpsertResult struct {
	RecordID string `json:"record_id"`
	Created  bool   `json:"created"`
}
