package docstore_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/trainerdesk/internal/docstore"
)

func TestTimestamp_JSONIsUnixMillis(t *testing.T) {
	ts := docstore.FromTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	b, err := json.Marshal(struct {
		Date docstore.Timestamp `json:"date"`
	}{ts})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":1709251200000}`, string(b))

	var back struct {
		Date docstore.Timestamp `json:"date"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ts, back.Date)
	assert.True(t, back.Date.Time().Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTimestamp_Ordering(t *testing.T) {
	a := docstore.FromTime(time.Unix(100, 0))
	b := docstore.FromTime(time.Unix(200, 0))
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
}
