// Package progress turns a trainer's metric template and a client's progress
// records into chart series, and validates the values entered for a record.
package progress

import (
	"time"

	"github.com/vytor/trainerdesk/internal/models"
)

// MinChartPoints is the smallest series a line can be drawn through.
const MinChartPoints = 2

// DefaultLabelLayout renders dates as day.month.
const DefaultLabelLayout = "02.01"

// Builder derives per-metric series. The zero value is not usable; use
// NewBuilder.
type Builder struct {
	layout string
	loc    *time.Location
}

// NewBuilder returns a Builder formatting labels with layout in loc. Empty
// layout and nil loc fall back to DefaultLabelLayout and UTC.
func NewBuilder(layout string, loc *time.Location) *Builder {
	if layout == "" {
		layout = DefaultLabelLayout
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{layout: layout, loc: loc}
}

var defaultBuilder = NewBuilder(DefaultLabelLayout, time.UTC)

// BuildSeries is Build on a UTC, day.month builder.
func BuildSeries(template models.MetricTemplate, records []models.ProgressRecord) []models.SeriesResult {
	return defaultBuilder.Build(template, records)
}

// Location is the zone labels are rendered in.
func (b *Builder) Location() *time.Location {
	return b.loc
}

// FormatLabel formats t the way chart labels are formatted.
func (b *Builder) FormatLabel(t time.Time) string {
	return t.In(b.loc).Format(b.layout)
}

// Build returns one result per template row, in row order. records must
// already be sorted ascending by date; a record contributes to a metric only
// when it holds a value for that metric. Inputs are not modified.
func (b *Builder) Build(template models.MetricTemplate, records []models.ProgressRecord) []models.SeriesResult {
	results := make([]models.SeriesResult, 0, len(template.Rows))
	for _, row := range template.Rows {
		results = append(results, b.buildRow(row, records))
	}
	return results
}

func (b *Builder) buildRow(row models.MetricRow, records []models.ProgressRecord) models.SeriesResult {
	var (
		labels []string
		points []float64
	)
	for _, rec := range records {
		v, ok := rec.Values[row.ID]
		if !ok {
			continue
		}
		labels = append(labels, b.FormatLabel(rec.Date))
		points = append(points, v)
	}

	res := models.SeriesResult{MetricID: row.ID, Name: row.Name}
	if len(points) < MinChartPoints {
		res.InsufficientData = true
		return res
	}
	res.Series = &models.ChartSeries{Labels: labels, Points: points}
	return res
}

// Index keys results by metric id.
func Index(results []models.SeriesResult) map[string]models.SeriesResult {
	out := make(map[string]models.SeriesResult, len(results))
	for _, r := range results {
		out[r.MetricID] = r
	}
	return out
}

// Chartable counts results that carry a drawable series.
func Chartable(results []models.SeriesResult) int {
	n := 0
	for _, r := range results {
		if !r.InsufficientData {
			n++
		}
	}
	return n
}
