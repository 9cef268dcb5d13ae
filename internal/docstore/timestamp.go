package docstore

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Timestamp is a point in time stored as unix milliseconds, so documents can
// be compared and ordered by it.
type Timestamp struct {
	Millis int64
}

// FromTime converts t to a Timestamp, dropping sub-millisecond precision.
func FromTime(t time.Time) Timestamp {
	return Timestamp{Millis: t.UnixMilli()}
}

// Time returns the UTC time of ts.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(ts.Millis).UTC()
}

func (ts Timestamp) Before(other Timestamp) bool { return ts.Millis < other.Millis }

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Millis)
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &ts.Millis)
}

// Value lets a Timestamp be used directly as a filter value.
func (ts Timestamp) Value() (driver.Value, error) {
	return ts.Millis, nil
}
