package models

// MetricRow is one tracked metric. Name is a localization key.
type MetricRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MetricTemplate is the ordered list of metrics a trainer tracks for all of
// their clients. Row order is display order.
type MetricTemplate struct {
	ID        string      `json:"id,omitempty"`
	TrainerID string      `json:"trainer_id"`
	Rows      []MetricRow `json:"rows"`
}

// HasRow reports whether id is one of the template's metrics.
func (t MetricTemplate) HasRow(id string) bool {
	for _, r := range t.Rows {
		if r.ID == id {
			return true
		}
	}
	return false
}
