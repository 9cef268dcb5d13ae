package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/progress"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr error
	}{
		{in: "7,5", want: 7.5},
		{in: "7.5", want: 7.5},
		{in: " 80 ", want: 80},
		{in: "-1,25", want: -1.25},
		{in: "", wantErr: progress.ErrEmptyValue},
		{in: "   ", wantErr: progress.ErrEmptyValue},
		{in: "abc", wantErr: progress.ErrInvalidNumber},
		{in: "1,2,3", wantErr: progress.ErrInvalidNumber},
		{in: "NaN", wantErr: progress.ErrInvalidNumber},
		{in: "Inf", wantErr: progress.ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := progress.ParseValue(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "7,5", progress.FormatValue(7.5))
	assert.Equal(t, "80", progress.FormatValue(80))
}

func TestValidateValues(t *testing.T) {
	tmpl := models.MetricTemplate{Rows: []models.MetricRow{
		{ID: "w", Name: "weight"},
		{ID: "h", Name: "height"},
		{ID: "c", Name: "chest"},
	}}

	t.Run("all valid", func(t *testing.T) {
		values, fieldErrs := progress.ValidateValues(tmpl, map[string]string{
			"w": "7,5", "h": "180", "c": "99.1", "extra": "not checked",
		})
		require.Nil(t, fieldErrs)
		assert.Equal(t, map[string]float64{"w": 7.5, "h": 180, "c": 99.1}, values)
	})

	t.Run("per field errors", func(t *testing.T) {
		values, fieldErrs := progress.ValidateValues(tmpl, map[string]string{
			"w": "abc", "h": "",
		})
		assert.Nil(t, values)
		assert.Equal(t, errors.FieldErrors{
			"w": errors.ReasonInvalidNumber,
			"h": errors.ReasonRequiredField,
			"c": errors.ReasonRequiredField,
		}, fieldErrs)
	})

	t.Run("empty template", func(t *testing.T) {
		values, fieldErrs := progress.ValidateValues(models.MetricTemplate{}, map[string]string{"w": "1"})
		assert.Nil(t, fieldErrs)
		assert.Empty(t, values)
	})
}
